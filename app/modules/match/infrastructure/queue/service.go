package matchqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/league-admin/app/shared/observability"
	"github.com/Black-And-White-Club/league-admin/app/shared/observability/attr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
)

// Service schedules bulk imports on River.
type Service struct {
	client  *river.Client[pgx.Tx]
	pool    *pgxpool.Pool
	logger  *slog.Logger
	metrics observability.ServiceMetrics
}

// NewService creates a River client over its own pgx pool. River requires
// pgx rather than database/sql.
func NewService(ctx context.Context, dsn string, workers int, logger *slog.Logger, metrics observability.ServiceMetrics, processor Processor) (*Service, error) {
	ctxLogger := logger.With(
		attr.String("operation", "new_import_queue_service"),
		attr.String("component", "river_queue"),
	)
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}

	start := time.Now()
	metrics.RecordOperationAttempt(ctx, "initialize_service", "river")

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	registry := river.NewWorkers()
	river.AddWorker(registry, NewMatchImportWorker(ctxLogger, processor))

	if workers <= 0 {
		workers = 1
	}
	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			ImportQueueName: {MaxWorkers: workers},
		},
		Workers: registry,
		Logger:  logger,
	})
	if err != nil {
		pool.Close()
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	metrics.RecordOperationSuccess(ctx, "initialize_service", "river")
	metrics.RecordOperationDuration(ctx, "initialize_service", "river", time.Since(start))
	ctxLogger.Info("Import queue service initialized")

	return &Service{client: client, pool: pool, logger: ctxLogger, metrics: metrics}, nil
}

// Start starts processing queued imports.
func (s *Service) Start(ctx context.Context) error {
	if err := s.client.Start(ctx); err != nil {
		s.logger.Error("Failed to start River client", attr.Error(err))
		return fmt.Errorf("failed to start River client: %w", err)
	}
	s.logger.Info("Import queue service started")
	return nil
}

// Stop waits for running jobs and releases the pool.
func (s *Service) Stop(ctx context.Context) error {
	defer s.pool.Close()
	if err := s.client.Stop(ctx); err != nil {
		s.logger.Error("Failed to stop River client", attr.Error(err))
		return fmt.Errorf("failed to stop River client: %w", err)
	}
	s.logger.Info("Import queue service stopped")
	return nil
}

// EnqueueImport schedules a stored import run. A run is attempted once; its
// outcome is recorded on the run itself.
func (s *Service) EnqueueImport(ctx context.Context, importID string) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "enqueue_import", "river")

	res, err := s.client.Insert(ctx, MatchImportJob{ImportID: importID}, &river.InsertOpts{
		Queue:       ImportQueueName,
		MaxAttempts: 1,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
		},
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to enqueue import", attr.String("import_id", importID), attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "enqueue_import", "river")
		return fmt.Errorf("failed to enqueue import job: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "enqueue_import", "river")
	s.metrics.RecordOperationDuration(ctx, "enqueue_import", "river", time.Since(start))
	s.logger.InfoContext(ctx, "Import job enqueued",
		attr.ExtractCorrelationID(ctx),
		attr.String("import_id", importID),
		attr.Int64("job_id", res.Job.ID),
	)
	return nil
}

// HealthCheck verifies the queue's database connection.
func (s *Service) HealthCheck(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("queue service health check failed: %w", err)
	}
	return nil
}
