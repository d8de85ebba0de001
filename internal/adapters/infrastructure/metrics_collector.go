package infrastructure

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"weatherdeck.app/internal/ports"
)

// PrometheusMetrics records store, gateway and cache metrics on its own registry
type PrometheusMetrics struct {
	registry *prometheus.Registry

	cacheHits     prometheus.Counter
	cacheMisses   prometheus.Counter
	cacheHitRatio prometheus.Gauge
	cacheLatency  *prometheus.HistogramVec

	gatewayRequests *prometheus.CounterVec
	gatewayLatency  *prometheus.HistogramVec

	bundleLookups   *prometheus.CounterVec
	fetches         *prometheus.CounterVec
	coalesced       prometheus.Counter
	refreshDuration *prometheus.HistogramVec

	mu       sync.Mutex
	hits     int64
	misses   int64
	outcomes map[string]int64
}

// NewPrometheusMetrics creates the collectors and registers them, plus the Go runtime collectors
func NewPrometheusMetrics() *PrometheusMetrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(registry)

	return &PrometheusMetrics{
		registry: registry,
		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "weatherdeck_cache_hits_total",
			Help: "The total number of bundle cache hits",
		}),
		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "weatherdeck_cache_misses_total",
			Help: "The total number of bundle cache misses",
		}),
		cacheHitRatio: factory.NewGauge(prometheus.GaugeOpts{
			Name: "weatherdeck_cache_hit_ratio",
			Help: "Bundle cache hit ratio (hits/total lookups)",
		}),
		cacheLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "weatherdeck_cache_duration_seconds",
			Help:    "Cache operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		gatewayRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "weatherdeck_gateway_requests_total",
			Help: "Requests to the weather and geocoding endpoints by outcome",
		}, []string{"operation", "outcome"}),
		gatewayLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "weatherdeck_gateway_duration_seconds",
			Help:    "Gateway request duration in seconds, retries included",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		}, []string{"operation"}),
		bundleLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "weatherdeck_store_bundle_lookups_total",
			Help: "Store bundle lookups served from cache or fetched",
		}, []string{"result"}),
		fetches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "weatherdeck_store_fetches_total",
			Help: "Store fetches by outcome",
		}, []string{"outcome"}),
		coalesced: factory.NewCounter(prometheus.CounterOpts{
			Name: "weatherdeck_store_coalesced_total",
			Help: "Requests that joined an in-flight fetch",
		}),
		refreshDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "weatherdeck_store_refresh_duration_seconds",
			Help:    "Duration of store refresh passes",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
		outcomes: make(map[string]int64),
	}
}

// Handler serves the registry in the Prometheus exposition format
func (m *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry
func (m *PrometheusMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHit implements ports.CacheMetrics
func (m *PrometheusMetrics) RecordHit() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.hits++
	m.cacheHits.Inc()
	m.updateHitRatio()
}

// RecordMiss implements ports.CacheMetrics
func (m *PrometheusMetrics) RecordMiss() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.misses++
	m.cacheMisses.Inc()
	m.updateHitRatio()
}

// updateHitRatio must be called while holding the mutex
func (m *PrometheusMetrics) updateHitRatio() {
	if total := m.hits + m.misses; total > 0 {
		m.cacheHitRatio.Set(float64(m.hits) / float64(total))
	}
}

// RecordOperation implements ports.CacheMetrics
func (m *PrometheusMetrics) RecordOperation(operation string, duration time.Duration) {
	m.cacheLatency.WithLabelValues(operation).Observe(duration.Seconds())
}

// ObserveRequest implements ports.GatewayMetrics
func (m *PrometheusMetrics) ObserveRequest(operation, outcome string, duration time.Duration) {
	m.gatewayRequests.WithLabelValues(operation, outcome).Inc()
	m.gatewayLatency.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordBundleHit implements ports.StoreMetrics
func (m *PrometheusMetrics) RecordBundleHit() {
	m.bundleLookups.WithLabelValues("cached").Inc()
}

// RecordBundleMiss implements ports.StoreMetrics
func (m *PrometheusMetrics) RecordBundleMiss() {
	m.bundleLookups.WithLabelValues("fetched").Inc()
}

// RecordFetch implements ports.StoreMetrics
func (m *PrometheusMetrics) RecordFetch(outcome string) {
	m.fetches.WithLabelValues(outcome).Inc()

	m.mu.Lock()
	m.outcomes[outcome]++
	m.mu.Unlock()
}

// RecordCoalesced implements ports.StoreMetrics
func (m *PrometheusMetrics) RecordCoalesced() {
	m.coalesced.Inc()
}

// ObserveRefresh implements ports.StoreMetrics
func (m *PrometheusMetrics) ObserveRefresh(kind string, duration time.Duration) {
	m.refreshDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// MetricsCollectorAdapter renders a JSON-friendly view of the counters for /api/metrics
type MetricsCollectorAdapter struct {
	metrics *PrometheusMetrics
	cache   ports.CacheStatsProvider
}

// MetricsCollectorConfig holds configuration for creating the metrics collector
type MetricsCollectorConfig struct {
	Metrics *PrometheusMetrics
	Cache   ports.CacheStatsProvider
}

// NewMetricsCollectorAdapter creates a new metrics collector adapter. Cache may be nil.
func NewMetricsCollectorAdapter(config MetricsCollectorConfig) *MetricsCollectorAdapter {
	return &MetricsCollectorAdapter{
		metrics: config.Metrics,
		cache:   config.Cache,
	}
}

// GetMetrics returns aggregated metrics from all monitored components
func (m *MetricsCollectorAdapter) GetMetrics(ctx context.Context) (map[string]interface{}, error) {
	m.metrics.mu.Lock()
	hits, misses := m.metrics.hits, m.metrics.misses
	fetches := make(map[string]int64, len(m.metrics.outcomes))
	for k, v := range m.metrics.outcomes {
		fetches[k] = v
	}
	m.metrics.mu.Unlock()

	var ratio float64
	if total := hits + misses; total > 0 {
		ratio = float64(hits) / float64(total)
	}

	result := map[string]interface{}{
		"bundle_cache": map[string]interface{}{
			"hits":      hits,
			"misses":    misses,
			"hit_ratio": ratio,
		},
		"fetches": fetches,
	}

	if m.cache != nil {
		stats := m.cache.GetStats()
		result["cache_provider"] = map[string]interface{}{
			"hits":      stats.Hits,
			"misses":    stats.Misses,
			"total_ops": stats.TotalOps,
			"hit_ratio": stats.HitRatio,
			"updated":   stats.LastUpdated,
		}
	}

	return result, nil
}
