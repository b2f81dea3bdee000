package authjwt

import (
	"time"

	authdomain "github.com/Black-And-White-Club/league-admin/app/modules/auth/domain"
)

// Provider defines the interface for JWT token operations.
type Provider interface {
	// GenerateToken creates a signed JWT for the session's user and role.
	GenerateToken(session *authdomain.Session, ttl time.Duration) (string, error)

	// ValidateToken validates a JWT token and returns the session if valid.
	ValidateToken(tokenString string) (*authdomain.Session, error)
}
