package auth

import (
	"context"
	"errors"
	"net/http"

	authservice "github.com/Black-And-White-Club/league-admin/app/modules/auth/application"
	authdomain "github.com/Black-And-White-Club/league-admin/app/modules/auth/domain"
	authhandlers "github.com/Black-And-White-Club/league-admin/app/modules/auth/infrastructure/handlers"
	authjwt "github.com/Black-And-White-Club/league-admin/app/modules/auth/infrastructure/jwt"
	"github.com/Black-And-White-Club/league-admin/app/shared/observability"
	"github.com/Black-And-White-Club/league-admin/config"
	"github.com/go-chi/chi/v5"
)

// Module represents the unified auth module.
type Module struct {
	Service  authservice.Service
	handlers *authhandlers.AuthHandlers

	// Authenticate requires a valid bearer token on every request it wraps.
	Authenticate func(http.Handler) http.Handler
	// EditorGuard admits editors and admins.
	EditorGuard func(http.Handler) http.Handler
	// AdminGuard admits admins only.
	AdminGuard func(http.Handler) http.Handler
}

// NewAuthModule creates a new auth module. users resolves the account a
// token belongs to.
func NewAuthModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	users authservice.UserLookup,
) (*Module, error) {
	logger := obs.Provider.Logger
	logger.InfoContext(ctx, "Initializing auth module")

	if cfg.JWT.Secret == "" {
		return nil, errors.New("jwt secret is required")
	}

	jwtProvider := authjwt.NewProvider(cfg.JWT.Secret, cfg.JWT.Issuer)
	service := authservice.NewService(
		jwtProvider,
		users,
		authservice.Config{DefaultTTL: cfg.JWT.DefaultTTL},
		logger,
		obs.Registry.Tracer,
	)

	return &Module{
		Service:      service,
		handlers:     authhandlers.NewAuthHandlers(service, logger),
		Authenticate: authhandlers.BearerAuth(service, logger),
		EditorGuard:  authhandlers.RequireRole(authdomain.RoleEditor),
		AdminGuard:   authhandlers.RequireRole(authdomain.RoleAdmin),
	}, nil
}

// RegisterRoutes mounts /auth on a router that already runs Authenticate.
func (m *Module) RegisterRoutes(r chi.Router) {
	m.handlers.RegisterRoutes(r, m.AdminGuard)
}
