package matchservice

import (
	"context"

	leaguedb "github.com/Black-And-White-Club/league-admin/app/modules/league/infrastructure/repositories"
	matchdb "github.com/Black-And-White-Club/league-admin/app/modules/match/infrastructure/repositories"
	"github.com/Black-And-White-Club/league-admin/app/shared/crud"
)

// Service is the match application surface used by the HTTP handlers.
type Service interface {
	Matches() crud.EntityService[matchdb.Match]
	UpdateResult(ctx context.Context, matchID string, update ResultUpdate) (*matchdb.Match, error)

	ImportMatches(ctx context.Context, req ImportRequest) (*matchdb.ImportRun, error)
	EnqueueImport(ctx context.Context, req ImportRequest) (*matchdb.ImportRun, error)
	GetImportRun(ctx context.Context, importID string) (*matchdb.ImportRun, error)
	ExportTemplate(ctx context.Context) ([]byte, error)

	Standings(ctx context.Context, leagueID string) ([]StandingRow, error)
	StandingsChart(ctx context.Context, leagueID string) ([]byte, error)
}

// ReferenceLookup supplies the read-only reference data an import resolves against.
type ReferenceLookup interface {
	GetLeague(ctx context.Context, leagueID string) (*leaguedb.League, error)
	ListTeams(ctx context.Context) ([]*leaguedb.Team, error)
	ListVenues(ctx context.Context) ([]*leaguedb.Venue, error)
}

// ImportQueue schedules a stored import run for background processing.
type ImportQueue interface {
	EnqueueImport(ctx context.Context, importID string) error
}
