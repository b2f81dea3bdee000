package leaguehandlers

import (
	"log/slog"
	"net/http"

	leagueservice "github.com/Black-And-White-Club/league-admin/app/modules/league/application"
	leaguedb "github.com/Black-And-White-Club/league-admin/app/modules/league/infrastructure/repositories"
	"github.com/Black-And-White-Club/league-admin/app/shared/crud"
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the league, team, player, venue and referee routes.
func RegisterRoutes(r chi.Router, svc *leagueservice.LeagueService, logger *slog.Logger, guard func(http.Handler) http.Handler) {
	r.Route("/leagues", func(r chi.Router) {
		crud.NewHandler[leaguedb.League](svc.Leagues, logger, crud.HandlerConfig{OrderBy: "name"}).Mount(r, guard)
	})
	r.Route("/teams", func(r chi.Router) {
		crud.NewHandler[leaguedb.Team](svc.Teams, logger, crud.HandlerConfig{OrderBy: "name"}).Mount(r, guard)
	})
	r.Route("/players", func(r chi.Router) {
		crud.NewHandler[leaguedb.Player](svc.Players, logger, crud.HandlerConfig{
			Filters: []crud.FilterParam{{Query: "teamId", Column: "team_id"}},
			OrderBy: "last_name",
		}).Mount(r, guard)
	})
	r.Route("/venues", func(r chi.Router) {
		crud.NewHandler[leaguedb.Venue](svc.Venues, logger, crud.HandlerConfig{OrderBy: "name"}).Mount(r, guard)
	})
	r.Route("/referees", func(r chi.Router) {
		crud.NewHandler[leaguedb.Referee](svc.Referees, logger, crud.HandlerConfig{OrderBy: "name"}).Mount(r, guard)
	})
}
