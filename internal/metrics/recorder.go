package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exposes sync pipeline observability via Prometheus
type Recorder struct {
	syncOutcomes *prometheus.CounterVec
	fetchErrors  *prometheus.CounterVec
	syncDuration prometheus.Histogram
	batchSize    prometheus.Gauge
}

// New creates a new Prometheus metrics recorder
func New() *Recorder {
	return &Recorder{
		syncOutcomes: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shorted_sync_outcomes_total",
				Help: "Total number of per-stock sync outcomes by result",
			},
			[]string{"result"},
		),
		fetchErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shorted_fetch_errors_total",
				Help: "Total number of external fetch failures by kind",
			},
			[]string{"kind"},
		),
		syncDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "shorted_sync_duration_seconds",
				Help:    "Duration of sync batches in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		batchSize: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "shorted_sync_batch_size",
				Help: "Number of stocks resolved for the last sync batch",
			},
		),
	}
}

// RecordOutcome records a per-stock sync outcome ("success" or "failure")
func (r *Recorder) RecordOutcome(result string) {
	r.syncOutcomes.WithLabelValues(result).Inc()
}

// RecordFetchError records an external fetch failure by kind
func (r *Recorder) RecordFetchError(kind string) {
	r.fetchErrors.WithLabelValues(kind).Inc()
}

// RecordSyncDuration records the wall-clock duration of a sync batch
func (r *Recorder) RecordSyncDuration(seconds float64) {
	r.syncDuration.Observe(seconds)
}

// RecordBatchSize records the size of the last sync batch
func (r *Recorder) RecordBatchSize(n int) {
	r.batchSize.Set(float64(n))
}
