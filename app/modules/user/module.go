package user

import (
	"context"
	"net/http"

	userservice "github.com/Black-And-White-Club/league-admin/app/modules/user/application"
	userhandlers "github.com/Black-And-White-Club/league-admin/app/modules/user/infrastructure/handlers"
	userdb "github.com/Black-And-White-Club/league-admin/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/league-admin/app/shared/observability"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the user module.
type Module struct {
	Service *userservice.UserService
	obs     observability.Observability
}

// NewUserModule creates and initializes a new user module. Routes are mounted
// separately because the auth middleware depends on Service.
func NewUserModule(ctx context.Context, obs observability.Observability, db *bun.DB) *Module {
	logger := obs.Provider.Logger
	logger.InfoContext(ctx, "user.NewUserModule initializing")

	repo := userdb.NewRepository(db)
	service := userservice.NewUserService(repo, logger, obs.Registry.Operations, obs.Registry.Tracer, db)

	return &Module{Service: service, obs: obs}
}

// RegisterRoutes mounts /users behind adminGuard.
func (m *Module) RegisterRoutes(r chi.Router, adminGuard func(http.Handler) http.Handler) {
	userhandlers.RegisterRoutes(r, m.Service, m.obs.Provider.Logger, adminGuard)
}
