package activitydb

import (
	"context"

	"github.com/Black-And-White-Club/league-admin/app/shared/repository"
	"github.com/uptrace/bun"
)

// Repository stores the activity log.
type Repository interface {
	Entries() repository.Repository[Entry]

	// Append inserts e unless an entry with the same id already exists.
	// It reports whether a row was written.
	Append(ctx context.Context, db bun.IDB, e *Entry) (bool, error)
}
