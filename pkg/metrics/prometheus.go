package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	computations *prometheus.HistogramVec
	cacheHits    *prometheus.CounterVec
	cacheMisses  *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		computations: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "astro_computation_duration_seconds",
				Help:    "Duration of chart and transit computations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		cacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "astro_cache_hits_total",
				Help: "Total number of response cache hits",
			},
			[]string{"scope"},
		),
		cacheMisses: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "astro_cache_misses_total",
				Help: "Total number of response cache misses",
			},
			[]string{"scope"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "astro_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
	}
}

// RecordComputation records the duration of one computation.
func (r *Recorder) RecordComputation(kind string, seconds float64) {
	r.computations.WithLabelValues(kind).Observe(seconds)
}

// RecordCacheHit records a response cache hit.
func (r *Recorder) RecordCacheHit(scope string) {
	r.cacheHits.WithLabelValues(scope).Inc()
}

// RecordCacheMiss records a response cache miss.
func (r *Recorder) RecordCacheMiss(scope string) {
	r.cacheMisses.WithLabelValues(scope).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}
