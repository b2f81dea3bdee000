package matchservice

import (
	"fmt"

	"github.com/Black-And-White-Club/league-admin/app/shared/apperr"
)

var (
	// ErrInvalidStatus is returned for a status outside the match lifecycle.
	ErrInvalidStatus = fmt.Errorf("%w: unknown match status", apperr.ErrInvalidInput)

	// ErrNegativeScore is returned when a score is below zero.
	ErrNegativeScore = fmt.Errorf("%w: scores must not be negative", apperr.ErrInvalidInput)

	// ErrSameTeams is returned when a match pits a team against itself.
	ErrSameTeams = fmt.Errorf("%w: home and away team must differ", apperr.ErrInvalidInput)

	// ErrQueueUnavailable is returned by EnqueueImport when no queue is wired.
	ErrQueueUnavailable = fmt.Errorf("%w: background imports are not enabled", apperr.ErrConflict)
)
