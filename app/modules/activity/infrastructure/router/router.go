package activityrouter

import (
	"context"
	"log/slog"
	"os"

	activityhandlers "github.com/Black-And-White-Club/league-admin/app/modules/activity/infrastructure/handlers"
	"github.com/Black-And-White-Club/league-admin/app/events"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	TestEnvironmentFlag  = "APP_ENV"
	TestEnvironmentValue = "test"
)

// ActivityRouter subscribes the activity handlers to every domain topic.
type ActivityRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber message.Subscriber

	metricsBuilder *metrics.PrometheusMetricsBuilder
}

// NewActivityRouter creates a new ActivityRouter. Router metrics are
// registered on registry unless APP_ENV=test.
func NewActivityRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber message.Subscriber,
	registry *prometheus.Registry,
) *ActivityRouter {
	inTestEnv := os.Getenv(TestEnvironmentFlag) == TestEnvironmentValue

	var metricsBuilder *metrics.PrometheusMetricsBuilder
	if registry != nil && !inTestEnv {
		b := metrics.NewPrometheusMetricsBuilder(registry, "league_admin", "activity")
		metricsBuilder = &b
	}

	return &ActivityRouter{
		logger:         logger,
		Router:         router,
		subscriber:     subscriber,
		metricsBuilder: metricsBuilder,
	}
}

// Configure installs middleware, metrics and one handler per topic.
func (r *ActivityRouter) Configure(_ context.Context, handlers *activityhandlers.ActivityHandlers) error {
	if r.metricsBuilder != nil {
		r.metricsBuilder.AddPrometheusRouterMetrics(r.Router)
	}

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
	)

	for _, topic := range events.AllTopics {
		r.Router.AddNoPublisherHandler(
			"activity."+topic,
			topic,
			r.subscriber,
			handlers.HandleEvent(topic),
		)
	}
	r.logger.Info("Activity router configured", slog.Int("topics", len(events.AllTopics)))
	return nil
}

// Run blocks until ctx is cancelled or the router stops.
func (r *ActivityRouter) Run(ctx context.Context) error {
	return r.Router.Run(ctx)
}

// Close stops the router.
func (r *ActivityRouter) Close() error {
	return r.Router.Close()
}
