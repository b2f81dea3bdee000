package userservice

import (
	"fmt"

	"github.com/Black-And-White-Club/league-admin/app/shared/apperr"
)

var (
	// ErrDuplicateEmail indicates another account already uses the email.
	ErrDuplicateEmail = fmt.Errorf("%w: email already in use", apperr.ErrConflict)

	// ErrInvalidRole is returned for a role outside viewer, player, editor and admin.
	ErrInvalidRole = fmt.Errorf("%w: unknown role", apperr.ErrInvalidInput)
)
