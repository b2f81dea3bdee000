package activitydb

import (
	"context"
	"fmt"

	"github.com/Black-And-White-Club/league-admin/app/shared/repository"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db      bun.IDB
	entries *repository.Impl[Entry, *Entry]
}

// NewRepository creates a new activity repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db, entries: repository.New[Entry](db)}
}

func (r *Impl) Entries() repository.Repository[Entry] { return r.entries }

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) Append(ctx context.Context, db bun.IDB, e *Entry) (bool, error) {
	db = r.resolveDB(db)
	res, err := db.NewInsert().
		Model(e).
		On("CONFLICT (id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to append activity entry: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}
