package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/Black-And-White-Club/league-admin/app/eventbus"
	"github.com/Black-And-White-Club/league-admin/app/modules/activity"
	"github.com/Black-And-White-Club/league-admin/app/modules/auth"
	"github.com/Black-And-White-Club/league-admin/app/modules/content"
	"github.com/Black-And-White-Club/league-admin/app/modules/league"
	"github.com/Black-And-White-Club/league-admin/app/modules/match"
	"github.com/Black-And-White-Club/league-admin/app/modules/user"
	"github.com/Black-And-White-Club/league-admin/app/shared/observability"
	"github.com/Black-And-White-Club/league-admin/config"
	"github.com/Black-And-White-Club/league-admin/db/bundb"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// App holds every long-lived component of the API process.
type App struct {
	Config        *config.Config
	Observability observability.Observability
	DB            *bun.DB
	EventBus      eventbus.EventBus
	Modules       *Modules
	Router        chi.Router

	wg sync.WaitGroup
}

// Modules groups the feature modules.
type Modules struct {
	User     *user.Module
	Auth     *auth.Module
	League   *league.Module
	Match    *match.Module
	Content  *content.Module
	Activity *activity.Module
}

// NewApp connects to the database and event bus and wires every module.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	obs := observability.New(cfg.Observability)
	logger := obs.Provider.Logger

	db, err := bundb.NewBunDB(ctx, cfg.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	bus, err := eventbus.NewEventBus(ctx, cfg.NATS, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize event bus: %w", err)
	}

	app := &App{
		Config:        cfg,
		Observability: obs,
		DB:            db,
		EventBus:      bus,
	}
	if err := app.initializeModules(ctx); err != nil {
		app.Close()
		return nil, err
	}

	logger.InfoContext(ctx, "Application initialized")
	return app, nil
}

func (app *App) initializeModules(ctx context.Context) error {
	obs := app.Observability
	cfg := app.Config
	m := &Modules{}
	app.Modules = m

	m.User = user.NewUserModule(ctx, obs, app.DB)

	var err error
	if m.Auth, err = auth.NewAuthModule(ctx, cfg, obs, m.User.Service); err != nil {
		return fmt.Errorf("failed to initialize auth module: %w", err)
	}

	if m.Activity, err = activity.NewActivityModule(ctx, obs, app.DB, app.EventBus); err != nil {
		return fmt.Errorf("failed to initialize activity module: %w", err)
	}

	m.Content = content.NewContentModule(ctx, cfg, obs, app.DB, app.EventBus)

	root, api := newRouter(cfg.HTTP, obs, app.healthChecks())
	app.Router = root

	// Media downloads are embedded in public pages and carry no token.
	api.Group(func(r chi.Router) {
		m.Content.RegisterPublicRoutes(r)
	})

	api.Group(func(r chi.Router) {
		r.Use(m.Auth.Authenticate)

		m.Auth.RegisterRoutes(r)
		m.User.RegisterRoutes(r, m.Auth.AdminGuard)
		m.Content.RegisterRoutes(r, m.Auth.EditorGuard)
		m.Activity.RegisterRoutes(r)

		m.League = league.NewLeagueModule(ctx, obs, app.DB, r, m.Auth.EditorGuard)
		m.Match, err = match.NewMatchModule(ctx, cfg, obs, app.DB, m.League.Service, app.EventBus, r, m.Auth.EditorGuard)
	})
	if err != nil {
		return fmt.Errorf("failed to initialize match module: %w", err)
	}
	return nil
}

func (app *App) healthChecks() map[string]func(context.Context) error {
	return map[string]func(context.Context) error{
		"postgres": app.DB.PingContext,
		"imports": func(ctx context.Context) error {
			if app.Modules == nil || app.Modules.Match == nil {
				return nil
			}
			return app.Modules.Match.HealthCheck(ctx)
		},
	}
}

// Run starts the background workers and the HTTP server, blocking until ctx
// is cancelled.
func (app *App) Run(ctx context.Context) error {
	logger := app.Observability.Provider.Logger

	app.wg.Add(2)
	go app.Modules.Activity.Run(ctx, &app.wg)
	go app.Modules.Match.Run(ctx, &app.wg)

	srv := &http.Server{
		Addr:    app.Config.HTTP.Addr,
		Handler: app.Router,
	}
	return app.serve(ctx, srv, logger)
}

// Close stops the modules and releases connections.
func (app *App) Close() {
	logger := app.Observability.Provider.Logger
	if app.Modules != nil {
		if app.Modules.Match != nil {
			if err := app.Modules.Match.Close(); err != nil {
				logger.Error("Failed to stop match module", slog.Any("error", err))
			}
		}
		if app.Modules.Activity != nil {
			if err := app.Modules.Activity.Close(); err != nil {
				logger.Error("Failed to stop activity module", slog.Any("error", err))
			}
		}
	}
	app.wg.Wait()

	if app.EventBus != nil {
		if err := app.EventBus.Close(); err != nil {
			logger.Error("Failed to close event bus", slog.Any("error", err))
		}
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			logger.Error("Failed to close database", slog.Any("error", err))
		}
	}
	logger.Info("Application shut down")
}
