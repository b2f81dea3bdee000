package matchdb

import (
	"context"

	"github.com/Black-And-White-Club/league-admin/app/shared/repository"
	"github.com/uptrace/bun"
)

// Repository defines the contract for match persistence.
type Repository interface {
	Matches() repository.Repository[Match]
	ImportRuns() repository.Repository[ImportRun]

	// ListPlayed returns the PLAYED matches of a league.
	ListPlayed(ctx context.Context, db bun.IDB, leagueID string) ([]*Match, error)

	// UpdateResult writes only the status, score and report columns of a match.
	UpdateResult(ctx context.Context, db bun.IDB, match *Match) error

	// UpdateImportStatus records progress or the outcome of an import. The
	// stored file is released once the run is finished.
	UpdateImportStatus(ctx context.Context, db bun.IDB, importID string, update ImportStatusUpdate) error
}
