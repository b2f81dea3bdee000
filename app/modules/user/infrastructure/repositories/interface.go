package userdb

import (
	"context"

	"github.com/Black-And-White-Club/league-admin/app/shared/repository"
	"github.com/uptrace/bun"
)

// Repository defines the contract for user persistence.
type Repository interface {
	Users() repository.Repository[User]

	// GetByEmail looks a user up by email, ignoring case.
	GetByEmail(ctx context.Context, db bun.IDB, email string) (*User, error)

	// EmailTaken reports whether another user already uses email, ignoring case.
	EmailTaken(ctx context.Context, db bun.IDB, email, excludeID string) (bool, error)
}
