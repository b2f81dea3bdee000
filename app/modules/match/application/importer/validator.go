package importer

import (
	"strings"

	"github.com/Black-And-White-Club/league-admin/app/modules/match/application/parsers"
)

// Validate checks required columns on the first row, then required values on
// every row, and converts the sheet into MatchRows. Offending rows are
// aggregated and reported 1-indexed.
func Validate(sheet *parsers.Sheet) ([]MatchRow, error) {
	if sheet == nil || len(sheet.Rows) == 0 {
		return nil, EmptyFileError{}
	}

	var missing []string
	first := sheet.Rows[0]
	for _, col := range RequiredColumns {
		if !first.Has(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	var invalid []int
	rows := make([]MatchRow, 0, len(sheet.Rows))
	for i, raw := range sheet.Rows {
		if !hasRequired(raw) {
			invalid = append(invalid, i+1)
			continue
		}
		rows = append(rows, MatchRow{
			HomeTeam:  raw.Value(ColHomeTeam),
			AwayTeam:  raw.Value(ColAwayTeam),
			Date:      trimCell(raw[ColDate]),
			Venue:     raw.Value(ColVenue),
			MatchNo:   raw.Value(ColMatchNo),
			Referee:   raw.Value(ColReferee),
			Status:    raw.Value(ColStatus),
			HomeScore: raw.Value(ColHomeScore),
			AwayScore: raw.Value(ColAwayScore),
		})
	}
	if len(invalid) > 0 {
		return nil, &InvalidRowsError{Rows: invalid}
	}

	return rows, nil
}

func hasRequired(row parsers.RawRow) bool {
	for _, col := range RequiredColumns {
		if !row.Has(col) {
			return false
		}
	}
	return true
}

func trimCell(c parsers.Cell) parsers.Cell {
	c.Text = strings.TrimSpace(c.Text)
	return c
}
