package parsers

import (
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
)

// nativeDate converts a date-formatted numeric cell to a time. A cell counts
// as a date when its stored value is a serial number and the displayed text
// differs from it, which is how number formats surface through GetRows.
func nativeDate(formatted, raw string) *time.Time {
	if raw == "" || raw == formatted {
		return nil
	}
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil || serial <= 0 {
		return nil
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return nil
	}
	return &t
}
