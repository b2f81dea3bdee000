package matchservice

import (
	"github.com/Black-And-White-Club/league-admin/app/modules/match/application/importer"
	"github.com/prometheus/client_golang/prometheus"
)

// ImportMetrics counts import outcomes by the stage they ended in.
type ImportMetrics struct {
	runs    *prometheus.CounterVec
	created prometheus.Counter
}

// NewImportMetrics registers the import collectors on reg. A nil reg yields
// unregistered collectors.
func NewImportMetrics(reg prometheus.Registerer) *ImportMetrics {
	m := &ImportMetrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_admin_match_imports_total",
			Help: "Bulk match imports by final stage and outcome.",
		}, []string{"stage", "outcome", "code"}),
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_admin_matches_imported_total",
			Help: "Matches created by bulk imports.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.runs, m.created)
	}
	return m
}

func (m *ImportMetrics) record(err error, created int) {
	if m == nil {
		return
	}
	if err != nil {
		stage, _ := importer.FailedStage(err)
		m.runs.WithLabelValues(string(stage), "failure", importer.ErrorCode(err)).Inc()
		return
	}
	m.runs.WithLabelValues(string(importer.StageDone), "success", "").Inc()
	m.created.Add(float64(created))
}
