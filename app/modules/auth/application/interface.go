package authservice

import (
	"context"
	"time"

	authdomain "github.com/Black-And-White-Club/league-admin/app/modules/auth/domain"
	userdb "github.com/Black-And-White-Club/league-admin/app/modules/user/infrastructure/repositories"
)

// Service defines the authentication service interface.
type Service interface {
	// Authenticate validates a bearer token and returns the session it grants.
	Authenticate(ctx context.Context, token string) (*authdomain.Session, error)

	// IssueToken mints a token for an existing user.
	IssueToken(ctx context.Context, req TokenRequest) (*TokenResponse, error)
}

// UserLookup resolves the account a token belongs to.
type UserLookup interface {
	GetUser(ctx context.Context, userID string) (*userdb.User, error)
	GetUserByEmail(ctx context.Context, email string) (*userdb.User, error)
}

// TokenRequest names the user to issue a token for, by id or email.
type TokenRequest struct {
	UserID string        `json:"userId,omitempty"`
	Email  string        `json:"email,omitempty"`
	TTL    time.Duration `json:"-"`
}

// TokenResponse carries a signed token.
type TokenResponse struct {
	Token     string              `json:"token"`
	ExpiresAt time.Time           `json:"expiresAt"`
	Session   *authdomain.Session `json:"session"`
}
