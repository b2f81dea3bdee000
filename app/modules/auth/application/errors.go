package authservice

import (
	"fmt"

	"github.com/Black-And-White-Club/league-admin/app/shared/apperr"
)

var (
	// ErrInvalidToken is returned when the token is invalid or names an unknown user.
	ErrInvalidToken = fmt.Errorf("%w: invalid authentication token", apperr.ErrUnauthorized)

	// ErrExpiredToken is returned when the token has expired.
	ErrExpiredToken = fmt.Errorf("%w: authentication token has expired", apperr.ErrUnauthorized)

	// ErrMissingToken is returned when no token is provided.
	ErrMissingToken = fmt.Errorf("%w: missing authentication token", apperr.ErrUnauthorized)

	// ErrForbidden is returned when the session's role is too low.
	ErrForbidden = fmt.Errorf("%w: insufficient role", apperr.ErrForbidden)
)
