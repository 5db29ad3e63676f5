// Package metrics provides Prometheus metrics for the mound similarity service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the mound service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Fetch metrics - Event Source collaborator
	eventsFetched   prometheus.Counter
	eventsDuplicate prometheus.Counter
	fetchLatency    prometheus.Histogram
	fetchErrors     prometheus.Counter

	// Core pipeline metrics
	aggregationLatency prometheus.Histogram
	aggregationGroups  prometheus.Gauge
	rankingLatency     prometheus.Histogram
	rankingCandidates  prometheus.Gauge
	rankingErrors      prometheus.Counter

	// Name resolution metrics
	namesResolved    prometheus.Counter
	resolutionErrors prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "mound",
		subsystem:        "similarity",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.eventsFetched = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_fetched_total",
		Help:      "Total pitch events fetched from the upstream provider.",
	})
	m.eventsDuplicate = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_duplicate_total",
		Help:      "Duplicate pitch rows dropped across fetch pages.",
	})
	m.fetchLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_duration_seconds",
		Help:      "Latency of one upstream fetch page.",
		Buckets:   m.histogramBuckets,
	})
	m.fetchErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_errors_total",
		Help:      "Upstream fetch failures.",
	})

	m.aggregationLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "aggregation_duration_seconds",
		Help:      "Latency of feature aggregation runs.",
		Buckets:   m.histogramBuckets,
	})
	m.aggregationGroups = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "aggregation_groups",
		Help:      "Group count produced by the most recent aggregation.",
	})
	m.rankingLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ranking_duration_seconds",
		Help:      "Latency of similarity ranking runs.",
		Buckets:   m.histogramBuckets,
	})
	m.rankingCandidates = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ranking_candidates",
		Help:      "Comparable candidate count in the most recent ranking.",
	})
	m.rankingErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ranking_errors_total",
		Help:      "Ranking failures (missing target, no candidates).",
	})

	m.namesResolved = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "names_resolved_total",
		Help:      "Pitcher ids successfully resolved to display names.",
	})
	m.resolutionErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "name_resolution_errors_total",
		Help:      "Name resolver failures (rankings still returned without names).",
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method, and status code.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
	}, []string{"endpoint", "method", "status"})
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers recording against the global manager.

// RecordFetch records one completed upstream fetch page.
func RecordFetch(rows, duplicates int, d time.Duration) {
	if !globalManager.enabled {
		return
	}
	globalManager.eventsFetched.Add(float64(rows))
	globalManager.eventsDuplicate.Add(float64(duplicates))
	globalManager.fetchLatency.Observe(d.Seconds())
}

// RecordFetchError records one upstream fetch failure.
func RecordFetchError() {
	if !globalManager.enabled {
		return
	}
	globalManager.fetchErrors.Inc()
}

// RecordAggregation records one aggregation run.
func RecordAggregation(groups int, d time.Duration) {
	if !globalManager.enabled {
		return
	}
	globalManager.aggregationGroups.Set(float64(groups))
	globalManager.aggregationLatency.Observe(d.Seconds())
}

// RecordRanking records one ranking run.
func RecordRanking(candidates int, d time.Duration) {
	if !globalManager.enabled {
		return
	}
	globalManager.rankingCandidates.Set(float64(candidates))
	globalManager.rankingLatency.Observe(d.Seconds())
}

// RecordRankingError records one ranking failure.
func RecordRankingError() {
	if !globalManager.enabled {
		return
	}
	globalManager.rankingErrors.Inc()
}

// RecordNamesResolved records resolved display names.
func RecordNamesResolved(n int) {
	if !globalManager.enabled {
		return
	}
	globalManager.namesResolved.Add(float64(n))
}

// RecordNameResolutionError records one resolver failure.
func RecordNameResolutionError() {
	if !globalManager.enabled {
		return
	}
	globalManager.resolutionErrors.Inc()
}

// RecordHTTPRequest records one HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration records one HTTP request's latency.
func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
}
