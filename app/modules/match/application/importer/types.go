package importer

import (
	"time"

	"github.com/Black-And-White-Club/league-admin/app/modules/match/application/parsers"
)

// Column keys of the match sheet.
const (
	ColHomeTeam  = "homeTeam"
	ColAwayTeam  = "awayTeam"
	ColDate      = "date"
	ColVenue     = "venue"
	ColMatchNo   = "matchNo"
	ColReferee   = "referee"
	ColStatus    = "status"
	ColHomeScore = "homeScore"
	ColAwayScore = "awayScore"
)

// RequiredColumns must be present with a value on every row.
var RequiredColumns = []string{ColHomeTeam, ColAwayTeam, ColDate, ColVenue, ColMatchNo}

// StatusNotPlayed is assigned when a row has no status.
const StatusNotPlayed = "NOT_PLAYED"

// MatchRow is a validated sheet row. Required fields are non-empty; optional
// fields keep their raw text for coercion by the mapper.
type MatchRow struct {
	HomeTeam  string
	AwayTeam  string
	Date      parsers.Cell
	Venue     string
	MatchNo   string
	Referee   string
	Status    string
	HomeScore string
	AwayScore string
}

// TeamRef is the reference data a team name resolves against.
type TeamRef struct {
	ID   string
	Name string
}

// VenueRef is the reference data a venue name resolves against.
type VenueRef struct {
	ID   string
	Name string
}

// ResolvedRow is a MatchRow whose names have been mapped to canonical entities.
type ResolvedRow struct {
	MatchRow
	HomeTeamID string
	AwayTeamID string
	VenueName  string
}

// Batch is the league context shared by every match of one import.
type Batch struct {
	LeagueID    string
	Competition string
}

// Match is the canonical record handed to the writer.
type Match struct {
	HomeTeamID  string
	AwayTeamID  string
	Date        time.Time
	Venue       string
	MatchNo     int
	Referee     string
	Status      string
	HomeScore   int
	AwayScore   int
	Report      *string
	Competition string
	LeagueID    string
}
