package matchqueue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/league-admin/app/shared/observability/attr"
	"github.com/riverqueue/river"
)

// Processor runs a stored import.
type Processor interface {
	ProcessImport(ctx context.Context, importID string) error
}

// MatchImportWorker hands queued imports to the match service.
type MatchImportWorker struct {
	river.WorkerDefaults[MatchImportJob]
	processor Processor
	logger    *slog.Logger
}

func NewMatchImportWorker(logger *slog.Logger, processor Processor) *MatchImportWorker {
	return &MatchImportWorker{processor: processor, logger: logger}
}

func (w *MatchImportWorker) Work(ctx context.Context, job *river.Job[MatchImportJob]) error {
	w.logger.InfoContext(ctx, "Processing match import job",
		attr.Int64("job_id", job.ID),
		attr.String("import_id", job.Args.ImportID),
	)
	if err := w.processor.ProcessImport(ctx, job.Args.ImportID); err != nil {
		w.logger.ErrorContext(ctx, "Match import job failed",
			attr.Int64("job_id", job.ID),
			attr.String("import_id", job.Args.ImportID),
			attr.Error(err),
		)
		return fmt.Errorf("failed to process import %s: %w", job.Args.ImportID, err)
	}
	return nil
}
