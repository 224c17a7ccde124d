// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus instruments for the aggregation pipeline and
// the HTTP API. Each Metrics value carries its own registry so tests can
// construct isolated instances.
type Metrics struct {
	registry *prometheus.Registry

	// SearchesTotal counts aggregation runs.
	SearchesTotal prometheus.Counter

	// AdapterResults counts records contributed, labeled by adapter.
	AdapterResults *prometheus.CounterVec

	// AdapterFailures counts failed or timed-out adapter calls, labeled by adapter.
	AdapterFailures *prometheus.CounterVec

	// DuplicatesRemoved counts records dropped by the deduplicator.
	DuplicatesRemoved prometheus.Counter

	// CacheHits and CacheMisses count adapter cache lookups.
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	// RequestDuration observes HTTP handler latency, labeled by route and status.
	RequestDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers all instruments on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		SearchesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "scholarhub_searches_total",
			Help: "Total aggregation runs.",
		}),
		AdapterResults: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scholarhub_adapter_results_total",
			Help: "Records contributed per source adapter.",
		}, []string{"adapter"}),
		AdapterFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scholarhub_adapter_failures_total",
			Help: "Adapter calls that failed, timed out, or panicked.",
		}, []string{"adapter"}),
		DuplicatesRemoved: factory.NewCounter(prometheus.CounterOpts{
			Name: "scholarhub_duplicates_removed_total",
			Help: "Records dropped by title deduplication.",
		}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "scholarhub_cache_hits_total",
			Help: "Adapter cache hits.",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "scholarhub_cache_misses_total",
			Help: "Adapter cache misses.",
		}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "scholarhub_request_duration_seconds",
			Help:    "HTTP handler latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

// Handler returns the /metrics HTTP handler for this instance's registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
