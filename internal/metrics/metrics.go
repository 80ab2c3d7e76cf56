package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Routing metrics
	RouteRequestsTotal   *prometheus.CounterVec
	RouteDurationSeconds *prometheus.HistogramVec
	RouteConfidence      prometheus.Histogram
	ClarificationsTotal  *prometheus.CounterVec

	// LLM extraction metrics
	LLMTotal           *prometheus.CounterVec
	LLMDuration        *prometheus.HistogramVec
	LLMFallbackTotal   *prometheus.CounterVec
	LLMFallbackLatency *prometheus.HistogramVec

	// Catalog metrics
	CatalogMatchTotal    *prometheus.CounterVec
	SnapshotRefreshTotal *prometheus.CounterVec
	CacheHitsTotal       *prometheus.CounterVec
	CacheMissesTotal     *prometheus.CounterVec

	// FAQ retrieval metrics
	FAQSearchTotal *prometheus.CounterVec

	// Rate limiter metrics
	RateLimiterDropped *prometheus.CounterVec

	// HTTP metrics
	HTTPErrorsTotal *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		// Routing metrics
		RouteRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "partnerbot_route_requests_total",
				Help: "Total number of routed turns by intent and outcome",
			},
			[]string{"intent", "outcome"}, // outcome: answered, clarify, error
		),

		RouteDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "partnerbot_route_duration_seconds",
				Help:    "Turn routing duration in seconds by stage",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
			},
			[]string{"stage"}, // stage: rules, llm, total
		),

		RouteConfidence: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "partnerbot_route_confidence",
				Help:    "Final confidence of routed turns",
				Buckets: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.75, 0.8, 0.9, 1},
			},
		),

		ClarificationsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "partnerbot_clarifications_total",
				Help: "Total number of clarifying questions asked by pending slot",
			},
			[]string{"slot"}, // slot: degree_level, target, intake_term, major_query
		),

		// LLM extraction metrics
		LLMTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "partnerbot_llm_requests_total",
				Help: "Total number of LLM extraction calls by provider and status",
			},
			[]string{"provider", "status"}, // status: success, timeout, rate_limit, server_error, error
		),

		LLMDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "partnerbot_llm_duration_seconds",
				Help:    "LLM extraction call duration in seconds by provider",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
			},
			[]string{"provider"},
		),

		LLMFallbackTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "partnerbot_llm_fallback_total",
				Help: "Total number of provider fallbacks during extraction",
			},
			[]string{"from", "to"},
		),

		LLMFallbackLatency: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "partnerbot_llm_fallback_latency_seconds",
				Help:    "Extra latency introduced by provider fallback",
				Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30},
			},
			[]string{"from", "to"},
		),

		// Catalog metrics
		CatalogMatchTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "partnerbot_catalog_match_total",
				Help: "Total number of catalog fuzzy matches by entity and outcome",
			},
			[]string{"entity", "outcome"}, // entity: university, major; outcome: confident, ambiguous, none
		),

		SnapshotRefreshTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "partnerbot_snapshot_refresh_total",
				Help: "Total number of catalog snapshot refreshes by status",
			},
			[]string{"status"}, // status: success, error
		),

		CacheHitsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "partnerbot_cache_hits_total",
				Help: "Total number of cache hits by module",
			},
			[]string{"module"},
		),

		CacheMissesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "partnerbot_cache_misses_total",
				Help: "Total number of cache misses by module",
			},
			[]string{"module"},
		),

		// FAQ retrieval metrics
		FAQSearchTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "partnerbot_faq_search_total",
				Help: "Total number of FAQ searches by status",
			},
			[]string{"status"}, // status: hit, miss, error
		),

		// Rate limiter metrics
		RateLimiterDropped: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "partnerbot_rate_limiter_dropped_total",
				Help: "Total number of requests dropped by rate limiter",
			},
			[]string{"limiter_type"}, // limiter_type: llm, partner
		),

		// HTTP metrics
		HTTPErrorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "partnerbot_http_errors_total",
				Help: "Total HTTP errors by type and module",
			},
			[]string{"error_type", "module"},
		),
	}

	return m
}

// RecordRoute records a routed turn with its outcome
func (m *Metrics) RecordRoute(intent, outcome string, duration float64) {
	if m == nil {
		return
	}
	m.RouteRequestsTotal.WithLabelValues(intent, outcome).Inc()
	m.RouteDurationSeconds.WithLabelValues("total").Observe(duration)
}

// RecordConfidence records the final confidence of a routed turn
func (m *Metrics) RecordConfidence(confidence float64) {
	if m == nil {
		return
	}
	m.RouteConfidence.Observe(confidence)
}

// RecordClarification records a clarifying question being asked
func (m *Metrics) RecordClarification(slot string) {
	if m == nil {
		return
	}
	m.ClarificationsTotal.WithLabelValues(slot).Inc()
}

// RecordLLM records an LLM extraction call
func (m *Metrics) RecordLLM(provider, status string, duration float64) {
	if m == nil {
		return
	}
	m.LLMTotal.WithLabelValues(provider, status).Inc()
	m.LLMDuration.WithLabelValues(provider).Observe(duration)
}

// RecordLLMFallback records a provider fallback during extraction
func (m *Metrics) RecordLLMFallback(from, to string, latency float64) {
	if m == nil {
		return
	}
	m.LLMFallbackTotal.WithLabelValues(from, to).Inc()
	m.LLMFallbackLatency.WithLabelValues(from, to).Observe(latency)
}

// RecordCatalogMatch records a catalog fuzzy match outcome
func (m *Metrics) RecordCatalogMatch(entity, outcome string) {
	if m == nil {
		return
	}
	m.CatalogMatchTotal.WithLabelValues(entity, outcome).Inc()
}

// RecordSnapshotRefresh records a catalog snapshot refresh
func (m *Metrics) RecordSnapshotRefresh(status string) {
	if m == nil {
		return
	}
	m.SnapshotRefreshTotal.WithLabelValues(status).Inc()
}

// RecordCacheHit records a cache hit
func (m *Metrics) RecordCacheHit(module string) {
	if m == nil {
		return
	}
	m.CacheHitsTotal.WithLabelValues(module).Inc()
}

// RecordCacheMiss records a cache miss
func (m *Metrics) RecordCacheMiss(module string) {
	if m == nil {
		return
	}
	m.CacheMissesTotal.WithLabelValues(module).Inc()
}

// RecordFAQSearch records an FAQ search
func (m *Metrics) RecordFAQSearch(status string) {
	if m == nil {
		return
	}
	m.FAQSearchTotal.WithLabelValues(status).Inc()
}

// RecordRateLimiterDrop records a request dropped by rate limiter
func (m *Metrics) RecordRateLimiterDrop(limiterType string) {
	if m == nil {
		return
	}
	m.RateLimiterDropped.WithLabelValues(limiterType).Inc()
}

// RecordHTTPError records HTTP error metrics
func (m *Metrics) RecordHTTPError(errorType, module string) {
	if m == nil {
		return
	}
	m.HTTPErrorsTotal.WithLabelValues(errorType, module).Inc()
}
