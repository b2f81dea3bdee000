package importer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Error codes surfaced to API clients.
const (
	CodeEmptyFile      = "EMPTY_FILE"
	CodeParse          = "PARSE_ERROR"
	CodeMissingColumns = "MISSING_COLUMNS"
	CodeInvalidRows    = "INVALID_ROWS"
	CodeUnknownTeam    = "UNKNOWN_TEAM"
	CodeUnknownVenue   = "UNKNOWN_VENUE"
	CodeDuplicateTeams = "DUPLICATE_TEAMS"
	CodeInvalidDate    = "INVALID_DATE"
	CodeWrite          = "WRITE_ERROR"
)

// Side identifies which team column failed resolution.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// EmptyFileError is returned when the upload has no sheets or no data rows.
type EmptyFileError struct{}

func (EmptyFileError) Error() string { return "file is empty or has no valid data" }
func (EmptyFileError) Code() string  { return CodeEmptyFile }

// ParseError wraps a failure to read the uploaded bytes.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("could not read file: %v", e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }
func (e *ParseError) Code() string  { return CodeParse }

// MissingColumnsError lists required columns absent from the first row.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "missing required columns: " + strings.Join(e.Columns, ", ")
}
func (e *MissingColumnsError) Code() string { return CodeMissingColumns }

// InvalidRowsError lists every row, numbered from 1, that lacks a required field.
type InvalidRowsError struct {
	Rows []int
}

func (e *InvalidRowsError) Error() string {
	nums := make([]string, len(e.Rows))
	for i, r := range e.Rows {
		nums[i] = strconv.Itoa(r)
	}
	return "rows missing required fields: " + strings.Join(nums, ", ")
}
func (e *InvalidRowsError) Code() string { return CodeInvalidRows }

type UnknownTeamError struct {
	Side Side
	Name string
}

func (e *UnknownTeamError) Error() string {
	if e.Side == SideAway {
		return fmt.Sprintf("away team %q not found", e.Name)
	}
	return fmt.Sprintf("home team %q not found", e.Name)
}
func (e *UnknownTeamError) Code() string { return CodeUnknownTeam }

type UnknownVenueError struct {
	Venue   string
	MatchNo string
}

func (e *UnknownVenueError) Error() string {
	return fmt.Sprintf("venue %q not found (match %s)", e.Venue, e.MatchNo)
}
func (e *UnknownVenueError) Code() string { return CodeUnknownVenue }

type DuplicateTeamsError struct {
	MatchNo string
}

func (e *DuplicateTeamsError) Error() string {
	return fmt.Sprintf("match %s: home and away team are the same", e.MatchNo)
}
func (e *DuplicateTeamsError) Code() string { return CodeDuplicateTeams }

type InvalidDateError struct {
	MatchNo string
	Value   string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("match %s: invalid date %q", e.MatchNo, e.Value)
}
func (e *InvalidDateError) Code() string { return CodeInvalidDate }

// WriteError carries the backend failure of the bulk insert.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string { return fmt.Sprintf("failed to save matches: %v", e.Err) }
func (e *WriteError) Unwrap() error { return e.Err }
func (e *WriteError) Code() string  { return CodeWrite }

// StageError is the terminal Failed state of a pipeline run. Its message is
// the underlying error's message verbatim.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string { return e.Err.Error() }
func (e *StageError) Unwrap() error { return e.Err }

// ErrorCode returns the code of the first coded error in err's chain, or "".
func ErrorCode(err error) string {
	var coded interface{ Code() string }
	if errors.As(err, &coded) {
		return coded.Code()
	}
	return ""
}

// FailedStage returns the stage a pipeline error originated from.
func FailedStage(err error) (Stage, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}
	return "", false
}
