package userservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	authdomain "github.com/Black-And-White-Club/league-admin/app/modules/auth/domain"
	userdb "github.com/Black-And-White-Club/league-admin/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/league-admin/app/shared/apperr"
	"github.com/Black-And-White-Club/league-admin/app/shared/crud"
	"github.com/Black-And-White-Club/league-admin/app/shared/observability"
	"github.com/Black-And-White-Club/league-admin/app/shared/repository"
	"github.com/Black-And-White-Club/league-admin/app/shared/results"
	"github.com/Black-And-White-Club/league-admin/app/shared/telemetry"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// UserService manages admin-panel accounts.
type UserService struct {
	repo  userdb.Repository
	scope telemetry.Scope
	Users *crud.Service[userdb.User, *userdb.User]
}

// NewUserService creates a new UserService.
func NewUserService(
	repo userdb.Repository,
	logger *slog.Logger,
	metrics observability.ServiceMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &UserService{
		repo: repo,
		scope: telemetry.Scope{
			Service: "UserService",
			Logger:  logger,
			Tracer:  tracer,
			Metrics: metrics,
			DB:      db,
		},
	}
	s.Users = crud.NewService[userdb.User](s.scope, repo.Users(), "User", crud.Options[userdb.User]{
		Validate: s.validateUser,
	})
	return s
}

// GetUser returns one account.
func (s *UserService) GetUser(ctx context.Context, userID string) (*userdb.User, error) {
	return s.Users.Get(ctx, userID)
}

// GetUserByEmail returns the account registered under email.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*userdb.User, error) {
	return telemetry.Unwrap(telemetry.WithTelemetry(s.scope, ctx, "GetUserByEmail", "", func(ctx context.Context) (results.OperationResult[*userdb.User, error], error) {
		user, err := s.repo.GetByEmail(ctx, nil, email)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return results.FailureResult[*userdb.User, error](fmt.Errorf("user: %w", apperr.ErrNotFound)), nil
			}
			return results.OperationResult[*userdb.User, error]{}, err
		}
		return results.SuccessResult[*userdb.User, error](user), nil
	}))
}

// UpdateRole changes the role of one account.
func (s *UserService) UpdateRole(ctx context.Context, userID string, role authdomain.Role) (*userdb.User, error) {
	return telemetry.Unwrap(telemetry.WithTelemetry(s.scope, ctx, "UpdateRole", userID, func(ctx context.Context) (results.OperationResult[*userdb.User, error], error) {
		return telemetry.RunInTx(s.scope, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[*userdb.User, error], error) {
			if !role.IsValid() {
				return results.FailureResult[*userdb.User, error](fmt.Errorf("%w: %q", ErrInvalidRole, role)), nil
			}
			user, err := s.repo.Users().Get(ctx, db, userID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return results.FailureResult[*userdb.User, error](fmt.Errorf("user %q: %w", userID, apperr.ErrNotFound)), nil
				}
				return results.OperationResult[*userdb.User, error]{}, err
			}
			user.Role = role
			if err := s.repo.Users().Update(ctx, db, user); err != nil {
				return results.OperationResult[*userdb.User, error]{}, fmt.Errorf("failed to update role: %w", err)
			}
			return results.SuccessResult[*userdb.User, error](user), nil
		})
	}))
}

func (s *UserService) validateUser(ctx context.Context, db bun.IDB, u *userdb.User, excludeID string) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.DisplayName = strings.TrimSpace(u.DisplayName)
	if u.Email == "" {
		return apperr.Invalid("email is required")
	}
	if addr, err := mail.ParseAddress(u.Email); err != nil || addr.Address != u.Email {
		return apperr.Invalid("email %q is not a valid address", u.Email)
	}
	if u.Role == "" {
		u.Role = authdomain.RoleViewer
	}
	if !u.Role.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidRole, u.Role)
	}

	taken, err := s.repo.EmailTaken(ctx, db, u.Email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: %s", ErrDuplicateEmail, u.Email)
	}
	return nil
}
