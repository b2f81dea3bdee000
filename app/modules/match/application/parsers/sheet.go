package parsers

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrEmptyFile is returned when a file has no sheets or no data rows.
	ErrEmptyFile = errors.New("file is empty or has no valid data")

	// ErrUnsupportedFileType is returned for extensions other than csv, xlsx and xls.
	ErrUnsupportedFileType = errors.New("unsupported file type")
)

// Cell is a single spreadsheet value. Time is set when the source cell was a
// native spreadsheet date rather than text.
type Cell struct {
	Text string
	Time *time.Time
}

// IsBlank reports whether the cell carries no value.
func (c Cell) IsBlank() bool {
	return c.Time == nil && strings.TrimSpace(c.Text) == ""
}

// RawRow is one data row keyed by column header. Blank cells are omitted.
type RawRow map[string]Cell

// Value returns the trimmed text of column key.
func (r RawRow) Value(key string) string {
	return strings.TrimSpace(r[key].Text)
}

// Has reports whether column key holds a non-blank value.
func (r RawRow) Has(key string) bool {
	c, ok := r[key]
	return ok && !c.IsBlank()
}

// Sheet is the ordered content of the first worksheet of an upload.
type Sheet struct {
	Headers []string
	Rows    []RawRow
}

// knownHeaders maps normalized header text to the canonical column key.
var knownHeaders = map[string]string{
	"hometeam":  "homeTeam",
	"awayteam":  "awayTeam",
	"date":      "date",
	"venue":     "venue",
	"matchno":   "matchNo",
	"referee":   "referee",
	"status":    "status",
	"homescore": "homeScore",
	"awayscore": "awayScore",
}

// canonicalHeader trims a header, drops any parenthesised hint such as
// "date (YYYY-MM-DD)" and maps known columns to their canonical key.
func canonicalHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	if i := strings.Index(h, "("); i > 0 {
		h = h[:i]
	}
	h = strings.TrimSpace(h)
	normalized := strings.ToLower(strings.NewReplacer(" ", "", "_", "", "-", "").Replace(h))
	if key, ok := knownHeaders[normalized]; ok {
		return key
	}
	return h
}

// buildSheet turns a header record and data records into a Sheet. cellAt
// returns the cell for a data row and column index.
func buildSheet(header []string, rowCount int, cellAt func(row, col int) Cell) (*Sheet, error) {
	headers := make([]string, len(header))
	for i, h := range header {
		headers[i] = canonicalHeader(h)
	}

	sheet := &Sheet{Headers: headers}
	for r := 0; r < rowCount; r++ {
		row := RawRow{}
		for c, key := range headers {
			if key == "" {
				continue
			}
			cell := cellAt(r, c)
			if cell.IsBlank() {
				continue
			}
			row[key] = cell
		}
		if len(row) == 0 {
			continue
		}
		sheet.Rows = append(sheet.Rows, row)
	}

	if len(sheet.Rows) == 0 {
		return nil, ErrEmptyFile
	}
	return sheet, nil
}

// recordSheet builds a Sheet from plain text records. The first non-blank
// record is the header.
func recordSheet(records [][]string) (*Sheet, error) {
	var kept [][]string
	for _, record := range records {
		if isBlankRecord(record) {
			continue
		}
		kept = append(kept, record)
	}
	if len(kept) < 2 {
		return nil, ErrEmptyFile
	}

	header, body := kept[0], kept[1:]
	return buildSheet(header, len(body), func(row, col int) Cell {
		if col >= len(body[row]) {
			return Cell{}
		}
		return Cell{Text: strings.TrimSpace(body[row][col])}
	})
}
