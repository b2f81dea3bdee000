package matchdb

import (
	"context"
	"fmt"
	"time"

	"github.com/Black-And-White-Club/league-admin/app/shared/repository"
	"github.com/uptrace/bun"
)

// ErrNotFound is returned when a match or import run is not found.
var ErrNotFound = repository.ErrNotFound

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db         bun.IDB
	matches    *repository.Impl[Match, *Match]
	importRuns *repository.Impl[ImportRun, *ImportRun]
}

// NewRepository creates a new match repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{
		db:         db,
		matches:    repository.New[Match](db),
		importRuns: repository.New[ImportRun](db),
	}
}

func (r *Impl) Matches() repository.Repository[Match]         { return r.matches }
func (r *Impl) ImportRuns() repository.Repository[ImportRun] { return r.importRuns }

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) ListPlayed(ctx context.Context, db bun.IDB, leagueID string) ([]*Match, error) {
	db = r.resolveDB(db)
	var matches []*Match
	err := db.NewSelect().
		Model(&matches).
		Where("league_id = ?", leagueID).
		Where("status = ?", StatusPlayed).
		Order("date ASC", "match_no ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list played matches: %w", err)
	}
	return matches, nil
}

func (r *Impl) UpdateResult(ctx context.Context, db bun.IDB, match *Match) error {
	db = r.resolveDB(db)
	match.UpdatedAt = time.Now()
	result, err := db.NewUpdate().
		Model(match).
		Column("status", "home_score", "away_score", "report", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update match result: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Impl) UpdateImportStatus(ctx context.Context, db bun.IDB, importID string, update ImportStatusUpdate) error {
	db = r.resolveDB(db)
	now := time.Now()
	q := db.NewUpdate().
		Model((*ImportRun)(nil)).
		Set("status = ?", update.Status).
		Set("stage = ?", update.Stage).
		Set("error_code = ?", update.ErrorCode).
		Set("error_message = ?", update.ErrorMessage).
		Set("created_count = ?", update.Created).
		Set("updated_at = ?", now).
		Where("id = ?", importID)
	if update.Status == ImportCompleted || update.Status == ImportFailed {
		q = q.Set("finished_at = ?", now).Set("file_data = NULL")
	}
	result, err := q.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update import status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
