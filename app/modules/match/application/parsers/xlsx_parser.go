package parsers

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSXParser parses XLSX match files, reading only the first sheet.
type XLSXParser struct{}

// NewXLSXParser creates a new XLSX parser
func NewXLSXParser() *XLSXParser {
	return &XLSXParser{}
}

// Parse parses XLSX data
func (p *XLSXParser) Parse(data []byte) (*Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		if strings.Contains(err.Error(), "zip: not a valid zip file") {
			return nil, fmt.Errorf("failed to open XLSX file: %w. (Hint: If this is a CSV file, please ensure it has a .csv extension)", err)
		}
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	// Use the first sheet
	sheetName := sheets[0]
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}
	rawRows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}

	headerIdx := -1
	for i, row := range rows {
		if !isBlankRecord(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 || headerIdx == len(rows)-1 {
		return nil, ErrEmptyFile
	}

	header := rows[headerIdx]
	body := rows[headerIdx+1:]
	var rawBody [][]string
	if len(rawRows) > headerIdx+1 {
		rawBody = rawRows[headerIdx+1:]
	}
	dateCol := -1
	for i, h := range header {
		if canonicalHeader(h) == "date" {
			dateCol = i
		}
	}

	return buildSheet(header, len(body), func(row, col int) Cell {
		if col >= len(body[row]) {
			return Cell{}
		}
		cell := Cell{Text: strings.TrimSpace(body[row][col])}
		if col == dateCol {
			cell.Time = nativeDate(cell.Text, rawAt(rawBody, row, col))
		}
		return cell
	})
}

func rawAt(rows [][]string, row, col int) string {
	if row >= len(rows) || col >= len(rows[row]) {
		return ""
	}
	return strings.TrimSpace(rows[row][col])
}
