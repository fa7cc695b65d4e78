package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "company_rollup"

// Metrics are the rollup counters and timings.
type Metrics struct {
	registry *prometheus.Registry

	DatasetsLoaded prometheus.Counter
	LoadFailures   prometheus.Counter
	RowsLoaded     prometheus.Counter
	RowsSkipped    prometheus.Counter
	GroupsEmitted  prometheus.Counter
	Exports        *prometheus.CounterVec
	RollupDuration prometheus.Histogram
}

// New registers all collectors on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		DatasetsLoaded: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "datasets_loaded_total",
			Help:      "Input files parsed successfully.",
		}),
		LoadFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "load_failures_total",
			Help:      "Input files rejected by the parser.",
		}),
		RowsLoaded: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_loaded_total",
			Help:      "Data rows read from input files.",
		}),
		RowsSkipped: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_skipped_total",
			Help:      "Data rows without a company name.",
		}),
		GroupsEmitted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "groups_emitted_total",
			Help:      "Company rows written to exports.",
		}),
		Exports: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Exports by format and outcome.",
		}, []string{"format", "outcome"}),
		RollupDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rollup_duration_seconds",
			Help:      "Time spent rolling up and encoding one export.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
