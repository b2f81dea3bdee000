package matchdb

import (
	"time"

	"github.com/Black-And-White-Club/league-admin/app/shared/repository"
	"github.com/uptrace/bun"
)

// Status is the lifecycle state of a match.
type Status string

const (
	StatusNotPlayed Status = "NOT_PLAYED"
	StatusLive      Status = "LIVE"
	StatusHalfTime  Status = "HALF_TIME"
	StatusPlayed    Status = "PLAYED"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusNotPlayed, StatusLive, StatusHalfTime, StatusPlayed:
		return true
	}
	return false
}

// Match is a single fixture within a league.
type Match struct {
	bun.BaseModel `bun:"table:matches,alias:m"`
	ID            string    `bun:"id,pk" json:"id"`
	HomeTeamID    string    `bun:"home_team_id,notnull" json:"homeTeamId"`
	AwayTeamID    string    `bun:"away_team_id,notnull" json:"awayTeamId"`
	Date          time.Time `bun:"date,notnull" json:"date"`
	Venue         string    `bun:"venue,notnull" json:"venue"`
	MatchNo       int       `bun:"match_no,notnull" json:"matchNo"`
	Referee       string    `bun:"referee,notnull" json:"referee"`
	Status        Status    `bun:"status,notnull" json:"status"`
	HomeScore     int       `bun:"home_score,notnull" json:"homeScore"`
	AwayScore     int       `bun:"away_score,notnull" json:"awayScore"`
	Report        *string   `bun:"report" json:"report"`
	Competition   string    `bun:"competition,notnull" json:"competition"`
	LeagueID      string    `bun:"league_id,notnull" json:"leagueId"`
	ImportID      string    `bun:"import_id,nullzero" json:"importId,omitempty"`
	repository.Timestamps
}

func (m *Match) PrimaryKey() string          { return m.ID }
func (m *Match) AssignPrimaryKey(id string) { m.ID = id }

// ImportStatus is the state of an asynchronous import.
type ImportStatus string

const (
	ImportPending   ImportStatus = "PENDING"
	ImportRunning   ImportStatus = "RUNNING"
	ImportCompleted ImportStatus = "COMPLETED"
	ImportFailed    ImportStatus = "FAILED"
)

// ImportRun records one bulk import and, for queued imports, the uploaded file.
type ImportRun struct {
	bun.BaseModel `bun:"table:import_runs,alias:ir"`
	ID            string       `bun:"id,pk" json:"id"`
	LeagueID      string       `bun:"league_id,notnull" json:"leagueId"`
	FileName      string       `bun:"file_name,notnull" json:"fileName"`
	FileData      []byte       `bun:"file_data,type:bytea" json:"-"`
	Status        ImportStatus `bun:"status,notnull" json:"status"`
	Stage         string       `bun:"stage,nullzero" json:"stage,omitempty"`
	ErrorCode     string       `bun:"error_code,nullzero" json:"errorCode,omitempty"`
	ErrorMessage  string       `bun:"error_message,nullzero" json:"errorMessage,omitempty"`
	Created       int          `bun:"created_count,notnull" json:"created"`
	RequestedBy   string       `bun:"requested_by,nullzero" json:"requestedBy,omitempty"`
	Async         bool         `bun:"async,notnull" json:"async"`
	FinishedAt    *time.Time   `bun:"finished_at" json:"finishedAt,omitempty"`
	repository.Timestamps
}

func (r *ImportRun) PrimaryKey() string          { return r.ID }
func (r *ImportRun) AssignPrimaryKey(id string) { r.ID = id }

// ImportStatusUpdate is the outcome written back to an ImportRun.
type ImportStatusUpdate struct {
	Status       ImportStatus
	Stage        string
	ErrorCode    string
	ErrorMessage string
	Created      int
}
