package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// analysis pipeline.
type Metrics struct {
	MessagesConsumed prometheus.Counter
	MessagesProduced prometheus.Counter
	BadMessages      prometheus.Counter
	PipelineRunning  prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Analysis metrics.
	Analyses           *prometheus.CounterVec // labels: mode, tier
	AnalysisErrors     *prometheus.CounterVec // labels: kind={invalid_profile,internal}
	AnalysisDuration   prometheus.Histogram
	BoundaryDetections prometheus.Counter
	DegenerateProfiles prometheus.Counter
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		MessagesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "convective_diag",
			Name:      "messages_consumed_total",
			Help:      "Total sounding messages read from the source topic.",
		}),
		MessagesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "convective_diag",
			Name:      "messages_produced_total",
			Help:      "Total diagnostic results written to the sink topic.",
		}),
		BadMessages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "convective_diag",
			Name:      "bad_messages_total",
			Help:      "Total undecodable source messages skipped.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "convective_diag",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "convective_diag",
			Name:      "batch_size",
			Help:      "Number of messages per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "convective_diag",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-analyze-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		Analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "convective_diag",
			Name:      "analyses_total",
			Help:      "Completed analyses by convective mode and support tier.",
		}, []string{"mode", "tier"}),
		AnalysisErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "convective_diag",
			Name:      "analysis_errors_total",
			Help:      "Analysis failures by kind.",
		}, []string{"kind"}),
		AnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "convective_diag",
			Name:      "analysis_duration_seconds",
			Help:      "Duration of a single sounding analysis.",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),
		BoundaryDetections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "convective_diag",
			Name:      "boundary_detections_total",
			Help:      "Analyses in which a mesoscale boundary was detected.",
		}),
		DegenerateProfiles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "convective_diag",
			Name:      "degenerate_profiles_total",
			Help:      "Profiles too shallow for moist parcel ascent.",
		}),
	}

	prometheus.MustRegister(
		m.MessagesConsumed,
		m.MessagesProduced,
		m.BadMessages,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.Analyses,
		m.AnalysisErrors,
		m.AnalysisDuration,
		m.BoundaryDetections,
		m.DegenerateProfiles,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		MessagesConsumed:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "convective_diag", Name: "messages_consumed_total"}),
		MessagesProduced:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "convective_diag", Name: "messages_produced_total"}),
		BadMessages:             prometheus.NewCounter(prometheus.CounterOpts{Namespace: "convective_diag", Name: "bad_messages_total"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "convective_diag", Name: "pipeline_running"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "convective_diag", Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "convective_diag", Name: "batch_processing_duration_seconds"}),
		Analyses:                prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "convective_diag", Name: "analyses_total"}, []string{"mode", "tier"}),
		AnalysisErrors:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "convective_diag", Name: "analysis_errors_total"}, []string{"kind"}),
		AnalysisDuration:        prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "convective_diag", Name: "analysis_duration_seconds"}),
		BoundaryDetections:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "convective_diag", Name: "boundary_detections_total"}),
		DegenerateProfiles:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "convective_diag", Name: "degenerate_profiles_total"}),
	}
}
