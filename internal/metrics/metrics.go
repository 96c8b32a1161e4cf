// Focusgraph - Pomodoro Session Analytics and Productivity Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/focusgraph

// Package metrics exposes Prometheus instrumentation for the HTTP API,
// the Badger store, the derived-view cache, the leaderboard circuit
// breaker, and WebSocket feed delivery. Everything registers through
// promauto against the default registry and is served at /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "focusgraph_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "focusgraph_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	HTTPActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "focusgraph_http_active_requests",
			Help: "Current number of in-flight HTTP requests",
		},
	)

	// Store metrics
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "focusgraph_store_operation_duration_seconds",
			Help:    "Duration of Badger store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	StoreOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "focusgraph_store_operation_errors_total",
			Help: "Total number of failed store operations",
		},
		[]string{"operation"},
	)

	// Derived-view cache metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "focusgraph_cache_hits_total",
			Help: "Total cache hits per derived view",
		},
		[]string{"view"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "focusgraph_cache_misses_total",
			Help: "Total cache misses per derived view",
		},
		[]string{"view"},
	)

	// Leaderboard circuit breaker metrics
	CircuitBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "focusgraph_leaderboard_breaker_state",
			Help: "Leaderboard circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)

	LeaderboardFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "focusgraph_leaderboard_fallbacks_total",
			Help: "Total leaderboard requests served by the single-entry fallback",
		},
	)

	// WebSocket feed metrics
	WebSocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "focusgraph_websocket_connections",
			Help: "Current number of connected WebSocket feed clients",
		},
	)

	FeedEventsBroadcast = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "focusgraph_feed_events_broadcast_total",
			Help: "Total feed events broadcast to WebSocket clients",
		},
		[]string{"kind"},
	)
)

// RecordHTTPRequest records one completed request.
func RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		HTTPActiveRequests.Inc()
	} else {
		HTTPActiveRequests.Dec()
	}
}

// RecordStoreOperation records a store call's duration and outcome.
func RecordStoreOperation(operation string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		StoreOperationErrors.WithLabelValues(operation).Inc()
	}
}

// RecordCacheLookup records a hit or miss for a derived view.
func RecordCacheLookup(view string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(view).Inc()
	} else {
		CacheMisses.WithLabelValues(view).Inc()
	}
}
