package authjwt

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidToken covers every admin token the provider refuses.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken means the token was valid but its exp claim has passed.
	ErrExpiredToken = errors.New("token has expired")

	// ErrInvalidSignature means the token was not signed with the admin secret.
	ErrInvalidSignature = errors.New("invalid token signature")

	// ErrUnknownRole is returned when a session or claim names a role outside
	// the admin role set.
	ErrUnknownRole = fmt.Errorf("%w: unknown admin role", ErrInvalidToken)

	// ErrMissingSubject is returned when a token carries no user id.
	ErrMissingSubject = fmt.Errorf("%w: missing subject", ErrInvalidToken)
)
