package content

import (
	"context"
	"net/http"

	contentservice "github.com/Black-And-White-Club/league-admin/app/modules/content/application"
	contenthandlers "github.com/Black-And-White-Club/league-admin/app/modules/content/infrastructure/handlers"
	contentdb "github.com/Black-And-White-Club/league-admin/app/modules/content/infrastructure/repositories"
	"github.com/Black-And-White-Club/league-admin/app/shared/observability"
	"github.com/Black-And-White-Club/league-admin/config"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the content module.
type Module struct {
	Service  *contentservice.ContentService
	handlers *contenthandlers.Handlers
}

// NewContentModule creates and initializes a new content module.
func NewContentModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	db *bun.DB,
	publisher message.Publisher,
) *Module {
	logger := obs.Provider.Logger
	logger.InfoContext(ctx, "content.NewContentModule initializing")

	repo := contentdb.NewRepository(db)
	service := contentservice.NewContentService(repo, publisher, contentservice.Config{
		MaxMediaBytes: cfg.Media.MaxBytes,
		PublicBaseURL: cfg.Media.PublicBaseURL,
	}, logger, obs.Registry.Operations, obs.Registry.Tracer, db)

	return &Module{
		Service:  service,
		handlers: contenthandlers.NewHandlers(service.News, service.Slides, service, logger),
	}
}

// RegisterRoutes mounts the authenticated content routes.
func (m *Module) RegisterRoutes(r chi.Router, writeGuard func(http.Handler) http.Handler) {
	m.handlers.RegisterRoutes(r, writeGuard)
}

// RegisterPublicRoutes mounts media downloads.
func (m *Module) RegisterPublicRoutes(r chi.Router) {
	m.handlers.RegisterPublicRoutes(r)
}
