// Package apperr defines the error classes shared across modules. Modules
// wrap these with their own sentinels so transports can map them to status codes.
package apperr

import (
	"errors"
	"fmt"

	"github.com/Black-And-White-Club/league-admin/app/shared/repository"
)

var (
	// ErrNotFound indicates the addressed record does not exist.
	ErrNotFound = repository.ErrNotFound

	// ErrInvalidInput indicates the caller supplied malformed or incomplete data.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict indicates the request collides with existing state.
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the caller lacks the required role.
	ErrForbidden = errors.New("forbidden")
)

// Invalid returns an ErrInvalidInput carrying a field-level reason.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Conflict returns an ErrConflict carrying a reason.
func Conflict(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}
