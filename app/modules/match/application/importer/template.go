package importer

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	TemplateSheet   = "Matches Template"
	ValidTeamsSheet = "Valid Teams"
)

// TemplateHeaders is the header row of the import template.
var TemplateHeaders = []string{
	ColHomeTeam,
	ColAwayTeam,
	"date (YYYY-MM-DD)",
	ColVenue,
	ColMatchNo,
	ColReferee,
	ColStatus,
	ColHomeScore,
	ColAwayScore,
}

// ExportTemplate builds the two-sheet import workbook listing teams by name.
func ExportTemplate(teams []TeamRef) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), TemplateSheet); err != nil {
		return nil, fmt.Errorf("failed to name template sheet: %w", err)
	}
	if err := setRow(f, TemplateSheet, 1, TemplateHeaders); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	dateFmt := "yyyy-mm-dd"
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})
	if err != nil {
		return nil, fmt.Errorf("failed to create date style: %w", err)
	}
	if err := f.SetColStyle(TemplateSheet, "C", dateStyle); err != nil {
		return nil, fmt.Errorf("failed to style date column: %w", err)
	}
	if err := f.SetRowStyle(TemplateSheet, 1, 1, bold); err != nil {
		return nil, fmt.Errorf("failed to style header row: %w", err)
	}
	if err := f.SetColWidth(TemplateSheet, "A", "I", 18); err != nil {
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}

	if _, err := f.NewSheet(ValidTeamsSheet); err != nil {
		return nil, fmt.Errorf("failed to create teams sheet: %w", err)
	}
	if err := setRow(f, ValidTeamsSheet, 1, []string{"name"}); err != nil {
		return nil, err
	}
	for i, t := range teams {
		if err := setRow(f, ValidTeamsSheet, i+2, []string{t.Name}); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(ValidTeamsSheet, "A", "A", 30); err != nil {
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}

	f.SetActiveSheet(0)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write template: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	axis, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, axis, &cells); err != nil {
		return fmt.Errorf("failed to write row %d of %q: %w", row, sheet, err)
	}
	return nil
}
