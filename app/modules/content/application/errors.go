package contentservice

import (
	"fmt"

	"github.com/Black-And-White-Club/league-admin/app/shared/apperr"
)

var (
	// ErrMediaTooLarge is returned when an upload exceeds the configured limit.
	ErrMediaTooLarge = fmt.Errorf("%w: media exceeds size limit", apperr.ErrInvalidInput)

	// ErrUnsupportedMediaType is returned for content types outside the image allow-list.
	ErrUnsupportedMediaType = fmt.Errorf("%w: unsupported media type", apperr.ErrInvalidInput)
)
