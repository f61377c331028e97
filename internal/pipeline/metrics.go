package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the extraction pipeline. All metrics
// are prefixed with "dirgest_".
type Metrics struct {
	JobsTotal          *prometheus.CounterVec
	RecordsTotal       prometheus.Counter
	DuplicatesTotal    prometheus.Counter
	SkippedTotal       prometheus.Counter
	PublishErrorsTotal prometheus.Counter
	ExtractDuration    prometheus.Histogram
	QueueDepth         prometheus.Gauge
}

// NewMetrics creates the pipeline metrics and registers them with reg.
// A nil reg leaves them unregistered, which suits tests and the CLI.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		JobsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dirgest_jobs_total",
				Help: "Extraction jobs finished, by final status",
			},
			[]string{"status"},
		),
		RecordsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "dirgest_records_extracted_total",
			Help: "Employee records extracted",
		}),
		DuplicatesTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "dirgest_duplicate_names_total",
			Help: "Record attempts dropped because the name was already seen",
		}),
		SkippedTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "dirgest_skipped_windows_total",
			Help: "Boundaries without a recognizable name",
		}),
		PublishErrorsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "dirgest_publish_errors_total",
			Help: "Failed writes to the pathstore service",
		}),
		ExtractDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "dirgest_extract_duration_seconds",
			Help:    "Duration of a single extraction pass",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		QueueDepth: f.NewGauge(prometheus.GaugeOpts{
			Name: "dirgest_queue_depth",
			Help: "Jobs waiting for a worker",
		}),
	}
}

func (m *Metrics) observeJob(status JobStatus) {
	m.JobsTotal.WithLabelValues(string(status)).Inc()
}
