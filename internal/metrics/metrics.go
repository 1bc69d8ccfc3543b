// Package metrics defines the Prometheus instrumentation for the photo
// services.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PhotoMetrics tracks remote fetches, cache activity and fallbacks for the
// photo loading services. All fields are safe for concurrent use. A nil
// *PhotoMetrics is valid and records nothing.
type PhotoMetrics struct {
	RemoteFetches  *prometheus.CounterVec
	RemoteErrors   *prometheus.CounterVec
	CacheFallbacks prometheus.Counter
	CacheWrites    prometheus.Counter
	FetchDuration  prometheus.Histogram
}

// NewPhotoMetrics creates and registers the photo metrics on the given
// registerer.
func NewPhotoMetrics(reg prometheus.Registerer) (*PhotoMetrics, error) {
	m := &PhotoMetrics{
		RemoteFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pexels_remote_fetches_total",
			Help: "Number of remote API fetches by operation",
		}, []string{"operation"}),
		RemoteErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pexels_remote_errors_total",
			Help: "Number of failed remote API fetches by error category",
		}, []string{"category"}),
		CacheFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pexels_cache_fallbacks_total",
			Help: "Number of page loads served from the cache after a network failure",
		}),
		CacheWrites: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pexels_cache_writes_total",
			Help: "Number of cache write batches",
		}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pexels_remote_fetch_duration_seconds",
			Help:    "Remote API fetch duration",
			Buckets: prometheus.DefBuckets,
		}),
	}

	collectors := []prometheus.Collector{
		m.RemoteFetches, m.RemoteErrors, m.CacheFallbacks, m.CacheWrites, m.FetchDuration,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveFetch records one remote fetch attempt.
func (m *PhotoMetrics) ObserveFetch(operation string, seconds float64) {
	if m == nil {
		return
	}
	m.RemoteFetches.WithLabelValues(operation).Inc()
	m.FetchDuration.Observe(seconds)
}

// ObserveError records one failed remote fetch.
func (m *PhotoMetrics) ObserveError(category string) {
	if m == nil {
		return
	}
	m.RemoteErrors.WithLabelValues(category).Inc()
}

// ObserveFallback records a page load served from the cache.
func (m *PhotoMetrics) ObserveFallback() {
	if m == nil {
		return
	}
	m.CacheFallbacks.Inc()
}

// ObserveCacheWrite records one cache write batch.
func (m *PhotoMetrics) ObserveCacheWrite() {
	if m == nil {
		return
	}
	m.CacheWrites.Inc()
}
