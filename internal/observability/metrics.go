package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the advisory service.
type Metrics struct {
	MessagesConsumed prometheus.Counter
	MessagesProduced prometheus.Counter
	AdvisoryFailures *prometheus.CounterVec // labels: reason
	PipelineRunning  prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Critical hours metrics.
	CriticalHoursOutcomes *prometheus.CounterVec // labels: target={4000,10000}, outcome={window,all_day,unreachable,below_threshold}
	SolverIterations      prometheus.Histogram
	SolverDivergences     prometheus.Counter
}

const namespace = "fire_behaviour_advisory"

var (
	batchSizeBuckets        = []float64{1, 5, 10, 20, 30, 40, 50, 75, 100}
	batchDurationBuckets    = []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10}
	solverIterationsBuckets = []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}
)

func newMetrics() *Metrics {
	return &Metrics{
		MessagesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_consumed_total",
			Help:      "Total station input messages read from the source topic.",
		}),
		MessagesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_produced_total",
			Help:      "Total advisories written to the sink topic.",
		}),
		AdvisoryFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "advisory_failures_total",
			Help:      "Station inputs for which no advisory could be computed, by reason.",
		}, []string{"reason"}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Number of messages per batch extracted from Kafka.",
			Buckets:   batchSizeBuckets,
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-calculate-load cycle.",
			Buckets:   batchDurationBuckets,
		}),
		CriticalHoursOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "critical_hours_total",
			Help:      "Critical hours results by target HFI and outcome.",
		}, []string{"target", "outcome"}),
		SolverIterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "critical_ffmc_solver_iterations",
			Help:      "Iterations taken by the critical FFMC search.",
			Buckets:   solverIterationsBuckets,
		}),
		SolverDivergences: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "critical_ffmc_solver_divergences_total",
			Help:      "Critical FFMC searches stopped at the iteration ceiling.",
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.MessagesConsumed,
		m.MessagesProduced,
		m.AdvisoryFailures,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.CriticalHoursOutcomes,
		m.SolverIterations,
		m.SolverDivergences,
	}
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics registered with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	m := newMetrics()
	prometheus.NewRegistry().MustRegister(m.collectors()...)
	return m
}
