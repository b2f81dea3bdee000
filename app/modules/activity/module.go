package activity

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	activityservice "github.com/Black-And-White-Club/league-admin/app/modules/activity/application"
	activityhandlers "github.com/Black-And-White-Club/league-admin/app/modules/activity/infrastructure/handlers"
	activitydb "github.com/Black-And-White-Club/league-admin/app/modules/activity/infrastructure/repositories"
	activityrouter "github.com/Black-And-White-Club/league-admin/app/modules/activity/infrastructure/router"
	"github.com/Black-And-White-Club/league-admin/app/shared/observability"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the activity module.
type Module struct {
	Service    *activityservice.ActivityService
	handlers   *activityhandlers.ActivityHandlers
	router     *activityrouter.ActivityRouter
	logger     *slog.Logger
	cancelFunc context.CancelFunc
}

// NewActivityModule creates the activity module and subscribes it to subscriber.
func NewActivityModule(
	ctx context.Context,
	obs observability.Observability,
	db *bun.DB,
	subscriber message.Subscriber,
) (*Module, error) {
	logger := obs.Provider.Logger
	logger.InfoContext(ctx, "activity.NewActivityModule initializing")

	repo := activitydb.NewRepository(db)
	service := activityservice.NewActivityService(repo, logger, obs.Registry.Operations, obs.Registry.Tracer, db)
	handlers := activityhandlers.NewActivityHandlers(service, logger)

	wmRouter, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create activity router: %w", err)
	}
	router := activityrouter.NewActivityRouter(logger, wmRouter, subscriber, obs.Registry.Prometheus)
	if err := router.Configure(ctx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure activity router: %w", err)
	}

	return &Module{
		Service:  service,
		handlers: handlers,
		router:   router,
		logger:   logger,
	}, nil
}

// RegisterRoutes mounts GET /activity.
func (m *Module) RegisterRoutes(r chi.Router) {
	m.handlers.RegisterRoutes(r)
}

// Running is closed once the subscriber router is consuming.
func (m *Module) Running() chan struct{} {
	return m.router.Router.Running()
}

// Run consumes events until ctx is cancelled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	if wg != nil {
		defer wg.Done()
	}
	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if err := m.router.Run(ctx); err != nil {
		m.logger.Error("Activity router stopped with error", "error", err)
	}
}

// Close stops the router.
func (m *Module) Close() error {
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	return m.router.Close()
}
