package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the report service.
type Metrics struct {
	Registry *prometheus.Registry

	AnalysesTotal    *prometheus.CounterVec
	AnalysisDuration prometheus.Histogram
	RowsProcessed    prometheus.Counter
}

// NewMetrics creates and registers the service collectors on a fresh
// registry so tests can create handlers independently.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		AnalysesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rowlens_analyses_total",
			Help: "Number of analysis requests by outcome.",
		}, []string{"status"}),
		AnalysisDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "rowlens_analysis_duration_seconds",
			Help:    "Wall time of one analysis run.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		RowsProcessed: factory.NewCounter(prometheus.CounterOpts{
			Name: "rowlens_rows_processed_total",
			Help: "Total rows measured across all analyses.",
		}),
	}
}
