package authservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	authdomain "github.com/Black-And-White-Club/league-admin/app/modules/auth/domain"
	authjwt "github.com/Black-And-White-Club/league-admin/app/modules/auth/infrastructure/jwt"
	userdb "github.com/Black-And-White-Club/league-admin/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/league-admin/app/shared/apperr"
	"github.com/Black-And-White-Club/league-admin/app/shared/observability/attr"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// DefaultTokenTTL is used when no TTL is configured.
const DefaultTokenTTL = 24 * time.Hour

// Config holds the configuration for the auth service.
type Config struct {
	DefaultTTL time.Duration
}

// service implements the Service interface.
type service struct {
	users       UserLookup
	jwtProvider authjwt.Provider
	config      Config
	logger      *slog.Logger
	tracer      trace.Tracer
}

// NewService creates a new auth service.
func NewService(
	jwtProvider authjwt.Provider,
	users UserLookup,
	config Config,
	logger *slog.Logger,
	tracer trace.Tracer,
) Service {
	if config.DefaultTTL <= 0 {
		config.DefaultTTL = DefaultTokenTTL
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("auth")
	}
	return &service{
		users:       users,
		jwtProvider: jwtProvider,
		config:      config,
		logger:      logger,
		tracer:      tracer,
	}
}

// Authenticate validates the token and reloads the user so that role changes
// and deletions take effect before the token expires.
func (s *service) Authenticate(ctx context.Context, token string) (*authdomain.Session, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.Authenticate")
	defer span.End()

	if strings.TrimSpace(token) == "" {
		return nil, ErrMissingToken
	}

	session, err := s.jwtProvider.ValidateToken(token)
	if err != nil {
		if errors.Is(err, authjwt.ErrExpiredToken) {
			return nil, ErrExpiredToken
		}
		s.logger.WarnContext(ctx, "Rejected token", attr.ExtractCorrelationID(ctx), attr.Error(err))
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetUser(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			s.logger.WarnContext(ctx, "Token for unknown user", attr.String("user_id", session.UserID))
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	session.Email = user.Email
	session.Role = user.Role
	return session, nil
}

// IssueToken mints a token for the user named by req.
func (s *service) IssueToken(ctx context.Context, req TokenRequest) (*TokenResponse, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.IssueToken")
	defer span.End()

	userID := strings.TrimSpace(req.UserID)
	email := strings.TrimSpace(req.Email)
	if userID == "" && email == "" {
		return nil, apperr.Invalid("userId or email is required")
	}

	var (
		user *userdb.User
		err  error
	)
	if userID != "" {
		user, err = s.users.GetUser(ctx, userID)
	} else {
		user, err = s.users.GetUserByEmail(ctx, email)
	}
	if err != nil {
		return nil, err
	}

	ttl := req.TTL
	if ttl <= 0 {
		ttl = s.config.DefaultTTL
	}
	session := &authdomain.Session{UserID: user.ID, Email: user.Email, Role: user.Role}
	token, err := s.jwtProvider.GenerateToken(session, ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	now := time.Now()
	session.IssuedAt = now
	session.ExpiresAt = now.Add(ttl)

	s.logger.InfoContext(ctx, "Issued token",
		attr.ExtractCorrelationID(ctx),
		attr.String("user_id", user.ID),
		attr.String("role", user.Role.String()),
		attr.String("issued_by", authdomain.ActorFromContext(ctx)),
	)
	return &TokenResponse{Token: token, ExpiresAt: session.ExpiresAt, Session: session}, nil
}
