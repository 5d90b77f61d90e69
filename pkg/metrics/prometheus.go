package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	computes    *prometheus.CounterVec
	errorsTotal *prometheus.CounterVec
	cacheTotal  *prometheus.CounterVec
	rowsBuilt   *prometheus.CounterVec
	latency     *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		computes: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quantcore_feature_computes_total",
				Help: "Total number of feature vectors computed",
			},
			[]string{"mode", "symbol"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quantcore_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		cacheTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quantcore_snapshot_cache_total",
				Help: "Indicator snapshot cache lookups",
			},
			[]string{"result"},
		),
		rowsBuilt: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quantcore_training_rows_total",
				Help: "Total number of labeled training rows built",
			},
			[]string{"symbol"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "quantcore_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordCompute records one assembled feature vector.
func (r *Recorder) RecordCompute(mode, symbol string) {
	r.computes.WithLabelValues(mode, symbol).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordCacheLookup records a snapshot cache hit or miss.
func (r *Recorder) RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheTotal.WithLabelValues(result).Inc()
}

// RecordRowsBuilt records labeled rows produced for a symbol.
func (r *Recorder) RecordRowsBuilt(symbol string, n int) {
	r.rowsBuilt.WithLabelValues(symbol).Add(float64(n))
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
