package authjwt

import (
	"errors"
	"os"
	"testing"
	"time"

	authdomain "github.com/Black-And-White-Club/league-admin/app/modules/auth/domain"
	"github.com/golang-jwt/jwt/v5"
)

func TestProvider_GenerateAndValidateToken(t *testing.T) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "test-secret-at-least-32-chars-long!!"
	}
	p := NewProvider(secret, "league-admin")

	session := &authdomain.Session{
		UserID: "user-123",
		Email:  "editor@example.com",
		Role:   authdomain.RoleEditor,
	}

	tests := []struct {
		name        string
		session     *authdomain.Session
		token       string
		ttl         time.Duration
		provider    Provider
		expectedErr error
		verify      func(t *testing.T, validated *authdomain.Session)
	}{
		{
			name:     "success",
			session:  session,
			ttl:      1 * time.Hour,
			provider: p,
			verify: func(t *testing.T, validated *authdomain.Session) {
				if validated.UserID != session.UserID {
					t.Errorf("expected userID %s, got %s", session.UserID, validated.UserID)
				}
				if validated.Email != session.Email {
					t.Errorf("expected email %s, got %s", session.Email, validated.Email)
				}
				if validated.Role != authdomain.RoleEditor {
					t.Errorf("expected role editor, got %s", validated.Role)
				}
				if validated.TokenID == "" {
					t.Error("expected a token id")
				}
				if validated.ExpiresAt.Before(time.Now()) {
					t.Errorf("expected future expiry, got %v", validated.ExpiresAt)
				}
			},
		},
		{
			name:        "expired token",
			session:     session,
			ttl:         -1 * time.Hour,
			provider:    p,
			expectedErr: ErrExpiredToken,
		},
		{
			name:        "invalid signature",
			session:     session,
			ttl:         1 * time.Hour,
			provider:    NewProvider("wrong-secret", "league-admin"),
			expectedErr: ErrInvalidSignature,
		},
		{
			name:        "wrong issuer",
			session:     session,
			ttl:         1 * time.Hour,
			provider:    NewProvider(secret, "someone-else"),
			expectedErr: ErrInvalidToken,
		},
		{
			name:        "malformed token",
			token:       "not.a.jwt",
			provider:    p,
			expectedErr: ErrInvalidToken,
		},
		{
			name: "unknown role",
			token: func() string {
				tok, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, &adminClaims{
					RegisteredClaims: jwt.RegisteredClaims{Subject: "u1", Issuer: "league-admin", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
					Role:             "owner",
				}).SignedString([]byte(secret))
				return tok
			}(),
			provider:    p,
			expectedErr: ErrUnknownRole,
		},
		{
			name: "missing subject",
			token: func() string {
				tok, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, &adminClaims{
					RegisteredClaims: jwt.RegisteredClaims{Issuer: "league-admin", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
					Role:             "admin",
				}).SignedString([]byte(secret))
				return tok
			}(),
			provider:    p,
			expectedErr: ErrMissingSubject,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := tt.token
			if tt.session != nil {
				var err error
				token, err = p.GenerateToken(tt.session, tt.ttl)
				if err != nil {
					t.Fatalf("failed to generate token: %v", err)
				}
			}

			validated, err := tt.provider.ValidateToken(token)

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Errorf("expected error %v, got %v", tt.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.verify != nil {
				tt.verify(t, validated)
			}
		})
	}
}

func TestProvider_RejectsInvalidRole(t *testing.T) {
	p := NewProvider("secret", "league-admin")
	_, err := p.GenerateToken(&authdomain.Session{UserID: "u1", Role: "owner"}, time.Hour)
	if !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrUnknownRole to match ErrInvalidToken, got %v", err)
	}
}
