package leagueservice

import (
	"fmt"

	"github.com/Black-And-White-Club/league-admin/app/shared/apperr"
)

// ErrDuplicateName indicates a team or venue name is already in use, ignoring case.
var ErrDuplicateName = fmt.Errorf("%w: name already in use", apperr.ErrConflict)
