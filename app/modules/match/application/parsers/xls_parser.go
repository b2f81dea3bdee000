package parsers

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/extrame/xls"
)

var (
	oleSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	zipSignature = []byte("PK\x03\x04")

	// ErrNotXLSWorkbook is returned when a .xls upload is neither an Excel
	// 97-2003 workbook nor a renamed .xlsx file.
	ErrNotXLSWorkbook = errors.New("not an Excel 97-2003 workbook")
)

// XLSParser parses legacy Excel 97-2003 (BIFF) match files, reading only the
// first sheet. Files saved as .xlsx but named .xls are handed to the XLSX
// parser.
type XLSParser struct {
	xlsx *XLSXParser
}

// NewXLSParser creates a new XLS parser
func NewXLSParser() *XLSParser {
	return &XLSParser{xlsx: NewXLSXParser()}
}

// Parse parses XLS data
func (p *XLSParser) Parse(data []byte) (*Sheet, error) {
	switch {
	case bytes.HasPrefix(data, zipSignature):
		return p.xlsx.Parse(data)
	case !bytes.HasPrefix(data, oleSignature):
		if len(bytes.TrimSpace(data)) == 0 {
			return nil, ErrEmptyFile
		}
		return nil, fmt.Errorf("failed to open XLS file: %w. (Hint: If this is a CSV file, please ensure it has a .csv extension)", ErrNotXLSWorkbook)
	}

	records, err := readFirstXLSSheet(data)
	if err != nil {
		return nil, err
	}
	return recordSheet(records)
}

// readFirstXLSSheet returns the cell text of the first worksheet. The BIFF
// reader panics on truncated streams, so panics surface as errors.
func readFirstXLSSheet(data []byte) (records [][]string, err error) {
	defer func() {
		if r := recover(); r != nil {
			records = nil
			err = fmt.Errorf("failed to read XLS file: %w: %v", ErrNotXLSWorkbook, r)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("failed to open XLS file: %w", err)
	}
	if wb == nil {
		return nil, fmt.Errorf("failed to open XLS file: %w: no workbook stream", ErrNotXLSWorkbook)
	}
	if wb.NumSheets() == 0 {
		return nil, ErrEmptyFile
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, ErrEmptyFile
	}

	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := xlsRow(sheet, i)
		if row == nil {
			records = append(records, nil)
			continue
		}
		record := make([]string, row.LastCol()+1)
		for c := range record {
			record[c] = row.Col(c)
		}
		records = append(records, record)
	}
	return records, nil
}

// xlsRow returns row i, or nil when the sheet holds no record for it.
func xlsRow(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(i)
}
