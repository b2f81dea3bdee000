package importer

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/en"
)

// dateLayouts are tried in order before the natural-language fallback.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"02 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// Mapper converts resolved rows into Match records.
type Mapper struct {
	clock    Clock
	location *time.Location
	parser   *when.Parser
}

// NewMapper creates a mapper that interprets dates without a zone in loc.
// A nil clock uses the system clock; a nil loc means UTC.
func NewMapper(clock Clock, loc *time.Location) *Mapper {
	if clock == nil {
		clock = systemClock{}
	}
	if loc == nil {
		loc = time.UTC
	}
	w := when.New(nil)
	w.Add(en.All...)
	return &Mapper{clock: clock, location: loc, parser: w}
}

// Map returns one Match per row in input order, or the first date failure.
func (m *Mapper) Map(rows []ResolvedRow, batch Batch) ([]Match, error) {
	out := make([]Match, 0, len(rows))
	for _, row := range rows {
		date, err := m.parseDate(row)
		if err != nil {
			return nil, err
		}

		status := row.Status
		if status == "" {
			status = StatusNotPlayed
		}

		out = append(out, Match{
			HomeTeamID:  row.HomeTeamID,
			AwayTeamID:  row.AwayTeamID,
			Date:        date,
			Venue:       row.VenueName,
			MatchNo:     coerceInt(row.MatchNo),
			Referee:     row.Referee,
			Status:      status,
			HomeScore:   coerceInt(row.HomeScore),
			AwayScore:   coerceInt(row.AwayScore),
			Report:      nil,
			Competition: batch.Competition,
			LeagueID:    batch.LeagueID,
		})
	}
	return out, nil
}

func (m *Mapper) parseDate(row ResolvedRow) (time.Time, error) {
	if row.Date.Time != nil {
		return *row.Date.Time, nil
	}

	text := strings.TrimSpace(row.Date.Text)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, text, m.location); err == nil {
			return t, nil
		}
	}

	if text != "" {
		r, err := m.parser.Parse(text, m.clock.Now().In(m.location))
		// The phrase must cover the whole cell, otherwise "2024-02-30" would
		// resolve from a stray fragment.
		if err == nil && r != nil && r.Index == 0 && len(r.Text) == len(text) {
			return r.Time, nil
		}
	}

	return time.Time{}, &InvalidDateError{MatchNo: row.MatchNo, Value: row.Date.Text}
}

// coerceInt parses a non-negative integer, truncating decimals such as the
// "3.0" spreadsheets produce. Anything else yields 0.
func coerceInt(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0
		}
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || f < 0 || f > math.MaxInt32 {
		return 0
	}
	return int(f)
}
