package observability

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewOperationMetrics(reg)
	ctx := context.Background()

	m.RecordOperationAttempt(ctx, "ImportMatches", "MatchService")
	m.RecordOperationAttempt(ctx, "ImportMatches", "MatchService")
	m.RecordOperationSuccess(ctx, "ImportMatches", "MatchService")
	m.RecordOperationFailure(ctx, "ImportMatches", "MatchService")
	m.RecordOperationDuration(ctx, "ImportMatches", "MatchService", 20*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues("MatchService", "ImportMatches", "attempt")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("MatchService", "ImportMatches", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("MatchService", "ImportMatches", "failure")))

	count, err := testutil.GatherAndCount(reg, "league_admin_service_operation_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLevel("debug").String())
	assert.Equal(t, "WARN", parseLevel(" Warning ").String())
	assert.Equal(t, "ERROR", parseLevel("error").String())
	assert.Equal(t, "INFO", parseLevel("").String())
}
