package league

import (
	"context"
	"net/http"

	leagueservice "github.com/Black-And-White-Club/league-admin/app/modules/league/application"
	leaguehandlers "github.com/Black-And-White-Club/league-admin/app/modules/league/infrastructure/handlers"
	leaguedb "github.com/Black-And-White-Club/league-admin/app/modules/league/infrastructure/repositories"
	"github.com/Black-And-White-Club/league-admin/app/shared/observability"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the league module.
type Module struct {
	Service *leagueservice.LeagueService
}

// NewLeagueModule creates and initializes a new league module.
func NewLeagueModule(
	ctx context.Context,
	obs observability.Observability,
	db *bun.DB,
	apiRouter chi.Router,
	writeGuard func(http.Handler) http.Handler,
) *Module {
	logger := obs.Provider.Logger
	logger.InfoContext(ctx, "league.NewLeagueModule initializing")

	repo := leaguedb.NewRepository(db)
	service := leagueservice.NewLeagueService(repo, logger, obs.Registry.Operations, obs.Registry.Tracer, db)

	if apiRouter != nil {
		leaguehandlers.RegisterRoutes(apiRouter, service, logger, writeGuard)
	}

	return &Module{Service: service}
}
