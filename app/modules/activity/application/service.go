package activityservice

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	activitydb "github.com/Black-And-White-Club/league-admin/app/modules/activity/infrastructure/repositories"
	"github.com/Black-And-White-Club/league-admin/app/events"
	"github.com/Black-And-White-Club/league-admin/app/shared/apperr"
	"github.com/Black-And-White-Club/league-admin/app/shared/observability"
	"github.com/Black-And-White-Club/league-admin/app/shared/observability/attr"
	"github.com/Black-And-White-Club/league-admin/app/shared/repository"
	"github.com/Black-And-White-Club/league-admin/app/shared/results"
	"github.com/Black-And-White-Club/league-admin/app/shared/telemetry"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// ActivityService records domain events and lists them newest first.
type ActivityService struct {
	repo   activitydb.Repository
	scope  telemetry.Scope
	logger *slog.Logger
	now    func() time.Time
}

// NewActivityService creates a new ActivityService.
func NewActivityService(
	repo activitydb.Repository,
	logger *slog.Logger,
	metrics observability.ServiceMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *ActivityService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActivityService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
		scope: telemetry.Scope{
			Service: "ActivityService",
			Logger:  logger,
			Tracer:  tracer,
			Metrics: metrics,
			DB:      db,
		},
	}
}

// Record appends msg to the log. Redelivered messages are ignored.
func (s *ActivityService) Record(ctx context.Context, topic string, msg *message.Message) error {
	entry := s.entryFor(topic, msg)
	written, err := s.repo.Append(ctx, nil, entry)
	if err != nil {
		return fmt.Errorf("failed to record %s: %w", topic, err)
	}
	if !written {
		s.logger.DebugContext(ctx, "Activity entry already recorded", attr.String("message_id", msg.UUID))
		return nil
	}
	s.logger.InfoContext(ctx, "Activity recorded",
		attr.String("topic", topic),
		attr.String("message_id", msg.UUID),
		attr.String("correlation_id", entry.CorrelationID),
	)
	return nil
}

func (s *ActivityService) entryFor(topic string, msg *message.Message) *activitydb.Entry {
	payload := map[string]any{}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		payload = map[string]any{"raw": string(msg.Payload)}
	}

	occurredAt := s.now().UTC()
	if v, ok := payload["occurredAt"].(string); ok {
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			occurredAt = t.UTC()
		}
	}

	return &activitydb.Entry{
		ID:            msg.UUID,
		Topic:         topic,
		Actor:         msg.Metadata.Get(events.MetaActor),
		CorrelationID: middleware.MessageCorrelationID(msg),
		Payload:       payload,
		OccurredAt:    occurredAt,
	}
}

// ListQuery narrows List.
type ListQuery struct {
	Topic string
	Limit int
}

// List returns the latest entries, newest first.
func (s *ActivityService) List(ctx context.Context, q ListQuery) ([]*activitydb.Entry, error) {
	return telemetry.Unwrap(telemetry.WithTelemetry(s.scope, ctx, "ListActivity", q.Topic, func(ctx context.Context) (results.OperationResult[[]*activitydb.Entry, error], error) {
		switch {
		case q.Limit < 0:
			return results.FailureResult[[]*activitydb.Entry, error](apperr.Invalid("limit must not be negative")), nil
		case q.Limit == 0:
			q.Limit = DefaultListLimit
		case q.Limit > MaxListLimit:
			q.Limit = MaxListLimit
		}

		opts := repository.ListOptions{OrderBy: "occurred_at", Desc: true, Limit: q.Limit}
		if q.Topic != "" {
			opts.Filters = []repository.Filter{{Column: "topic", Value: q.Topic}}
		}
		entries, err := s.repo.Entries().List(ctx, nil, opts)
		if err != nil {
			return results.OperationResult[[]*activitydb.Entry, error]{}, fmt.Errorf("failed to list activity: %w", err)
		}
		if entries == nil {
			entries = []*activitydb.Entry{}
		}
		return results.SuccessResult[[]*activitydb.Entry, error](entries), nil
	}))
}
