// Package observability bundles the logger, tracer and Prometheus registry
// handed to every module.
package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Black-And-White-Club/league-admin/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Provider holds the logging side of observability.
type Provider struct {
	Logger *slog.Logger
}

// Registry holds tracing and metrics handles.
type Registry struct {
	Tracer     trace.Tracer
	Prometheus *prometheus.Registry
	Operations *OperationMetrics
}

// Observability is passed by value to module constructors.
type Observability struct {
	Provider Provider
	Registry Registry
}

// New builds the process-wide observability stack from configuration.
func New(cfg config.ObservabilityConfig) Observability {
	logger := NewLogger(os.Stdout, cfg.LogLevel).With(
		slog.String("service", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return Observability{
		Provider: Provider{Logger: logger},
		Registry: Registry{
			Tracer:     otel.Tracer(cfg.ServiceName),
			Prometheus: reg,
			Operations: NewOperationMetrics(reg),
		},
	}
}

// NewNoop returns an Observability that discards logs and spans. Metrics are
// recorded into a private registry so tests can still inspect them.
func NewNoop() Observability {
	reg := prometheus.NewRegistry()
	return Observability{
		Provider: Provider{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))},
		Registry: Registry{
			Tracer:     noop.NewTracerProvider().Tracer("noop"),
			Prometheus: reg,
			Operations: NewOperationMetrics(reg),
		},
	}
}

// NewLogger returns a JSON slog logger at the given level.
func NewLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level)}))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
