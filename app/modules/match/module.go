package match

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	matchservice "github.com/Black-And-White-Club/league-admin/app/modules/match/application"
	matchhandlers "github.com/Black-And-White-Club/league-admin/app/modules/match/infrastructure/handlers"
	matchqueue "github.com/Black-And-White-Club/league-admin/app/modules/match/infrastructure/queue"
	matchdb "github.com/Black-And-White-Club/league-admin/app/modules/match/infrastructure/repositories"
	"github.com/Black-And-White-Club/league-admin/app/shared/observability"
	"github.com/Black-And-White-Club/league-admin/config"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the match module.
type Module struct {
	Service    *matchservice.MatchService
	queue      *matchqueue.Service
	logger     *slog.Logger
	cancelFunc context.CancelFunc
}

// NewMatchModule creates and initializes a new match module. Background
// imports are enabled when cfg.Import.QueueWorkers is positive.
func NewMatchModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	db *bun.DB,
	refs matchservice.ReferenceLookup,
	publisher message.Publisher,
	apiRouter chi.Router,
	writeGuard func(http.Handler) http.Handler,
) (*Module, error) {
	logger := obs.Provider.Logger
	logger.InfoContext(ctx, "match.NewMatchModule initializing")

	repo := matchdb.NewRepository(db)
	service := matchservice.NewMatchService(repo, refs, publisher, logger, obs.Registry.Operations, obs.Registry.Tracer, db,
		matchservice.WithImportMetrics(matchservice.NewImportMetrics(obs.Registry.Prometheus)),
	)

	module := &Module{Service: service, logger: logger}

	if cfg.Import.QueueWorkers > 0 {
		queue, err := matchqueue.NewService(ctx, cfg.Postgres.DSN, cfg.Import.QueueWorkers, logger, obs.Registry.Operations, service)
		if err != nil {
			return nil, fmt.Errorf("failed to create import queue: %w", err)
		}
		service.SetQueue(queue)
		module.queue = queue
	}

	if apiRouter != nil {
		matchhandlers.NewHandlers(service, logger, cfg.HTTP.MaxUploadBytes).RegisterRoutes(apiRouter, writeGuard)
	}

	return module, nil
}

// Run starts the import queue and blocks until ctx is cancelled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	if wg != nil {
		defer wg.Done()
	}
	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	// The queue is stopped gracefully by Close, not by ctx.
	if m.queue != nil {
		if err := m.queue.Start(context.WithoutCancel(ctx)); err != nil {
			m.logger.Error("Failed to start import queue", "error", err)
			return
		}
	}

	<-ctx.Done()
	m.logger.Info("Match module goroutine stopped")
}

// Close stops the import queue, letting running imports finish.
func (m *Module) Close() error {
	m.logger.Info("Stopping match module")
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	if m.queue == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return m.queue.Stop(ctx)
}

// HealthCheck reports whether the import queue can reach its database.
func (m *Module) HealthCheck(ctx context.Context) error {
	if m.queue == nil {
		return nil
	}
	return m.queue.HealthCheck(ctx)
}
