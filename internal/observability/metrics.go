package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// sync pipeline.
type Metrics struct {
	SamplesPublished prometheus.Counter
	ExtractErrors    prometheus.Counter
	PublishErrors    prometheus.Counter
	SyncRunning      prometheus.Gauge

	// Per-cycle metrics.
	SamplesPerCycle   prometheus.Histogram
	SyncCycleDuration prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		SamplesPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "geomag_etl",
			Name:      "samples_published_total",
			Help:      "Total observation samples written to the sink topic.",
		}),
		ExtractErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "geomag_etl",
			Name:      "extract_errors_total",
			Help:      "Total failed timeseries retrievals.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "geomag_etl",
			Name:      "publish_errors_total",
			Help:      "Total failed publishes to the sink topic.",
		}),
		SyncRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "geomag_etl",
			Name:      "sync_running",
			Help:      "1 when the sync pipeline is active, 0 when shut down.",
		}),
		SamplesPerCycle: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "geomag_etl",
			Name:      "samples_per_cycle",
			Help:      "Number of samples published per sync cycle.",
			Buckets:   []float64{0, 60, 240, 1440, 5760, 86400, 345600},
		}),
		SyncCycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "geomag_etl",
			Name:      "sync_cycle_duration_seconds",
			Help:      "Duration of a complete fetch-flatten-publish cycle.",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
	}

	prometheus.MustRegister(
		m.SamplesPublished,
		m.ExtractErrors,
		m.PublishErrors,
		m.SyncRunning,
		m.SamplesPerCycle,
		m.SyncCycleDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		SamplesPublished:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "geomag_etl", Name: "samples_published_total"}),
		ExtractErrors:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "geomag_etl", Name: "extract_errors_total"}),
		PublishErrors:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "geomag_etl", Name: "publish_errors_total"}),
		SyncRunning:       prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "geomag_etl", Name: "sync_running"}),
		SamplesPerCycle:   prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "geomag_etl", Name: "samples_per_cycle"}),
		SyncCycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "geomag_etl", Name: "sync_cycle_duration_seconds"}),
	}
}
