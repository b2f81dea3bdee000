package userhandlers

import (
	"log/slog"
	"net/http"

	authdomain "github.com/Black-And-White-Club/league-admin/app/modules/auth/domain"
	userservice "github.com/Black-And-White-Club/league-admin/app/modules/user/application"
	userdb "github.com/Black-And-White-Club/league-admin/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/league-admin/app/shared/crud"
	"github.com/Black-And-White-Club/league-admin/app/shared/httpx"
	"github.com/go-chi/chi/v5"
)

type roleRequest struct {
	Role authdomain.Role `json:"role"`
}

// RegisterRoutes mounts the user routes. Every route is wrapped with adminGuard.
func RegisterRoutes(r chi.Router, svc *userservice.UserService, logger *slog.Logger, adminGuard func(http.Handler) http.Handler) {
	r.Route("/users", func(r chi.Router) {
		if adminGuard != nil {
			r.Use(adminGuard)
		}
		crud.NewHandler[userdb.User](svc.Users, logger, crud.HandlerConfig{
			Filters: []crud.FilterParam{{Query: "role", Column: "role"}},
			OrderBy: "email",
		}).Mount(r, nil)

		r.Put("/{id}/role", func(w http.ResponseWriter, req *http.Request) {
			var body roleRequest
			if err := httpx.Decode(req, &body); err != nil {
				httpx.WriteError(w, req, logger, err)
				return
			}
			user, err := svc.UpdateRole(req.Context(), chi.URLParam(req, "id"), body.Role)
			if err != nil {
				httpx.WriteError(w, req, logger, err)
				return
			}
			httpx.JSON(w, http.StatusOK, user)
		})
	})
}
