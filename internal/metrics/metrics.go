// Package metrics defines the Prometheus collectors shared across the module.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Envelope store metrics
var (
	// EnvelopeReadsTotal tracks envelope reads by slot and result
	// (hit, miss, expired, corrupt, error).
	EnvelopeReadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "envelope_reads_total",
			Help: "Envelope store reads by slot and result",
		},
		[]string{"slot", "result"},
	)

	// EnvelopeWritesTotal tracks envelope writes by slot and status.
	EnvelopeWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "envelope_writes_total",
			Help: "Envelope store writes by slot and status",
		},
		[]string{"slot", "status"},
	)
)

// API client metrics
var (
	// APIRequestDuration tracks trainer API request latency by operation.
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Trainer API request duration in seconds",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)

	// APIRequestErrorsTotal tracks failed trainer API requests by operation and error type.
	APIRequestErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_request_errors_total",
			Help: "Failed trainer API requests by operation and error type",
		},
		[]string{"operation", "type"},
	)
)

// Practice metrics
var (
	// ReviewsSubmittedTotal tracks successful review submissions by difficulty.
	ReviewsSubmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviews_submitted_total",
			Help: "Successful review submissions by difficulty",
		},
		[]string{"difficulty"},
	)

	// SessionsResumedTotal counts practice sessions adopted from the envelope store.
	SessionsResumedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "practice_sessions_resumed_total",
			Help: "Practice sessions resumed from persisted state",
		},
	)

	// SessionsCompletedTotal counts practice sessions that reached Complete.
	SessionsCompletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "practice_sessions_completed_total",
			Help: "Practice sessions that reached the Complete state",
		},
	)

	// DueCount mirrors the broadcaster's current value.
	DueCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "due_count",
			Help: "Cards currently due according to the last authoritative source",
		},
	)
)

// Redis circuit breaker metrics
var (
	// BreakerStateChanges tracks circuit breaker transitions by new state.
	BreakerStateChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_circuit_breaker_state_changes_total",
			Help: "Redis circuit breaker state transitions by new state",
		},
		[]string{"state"},
	)

	// BreakerState is the current breaker state (0=closed, 1=half-open, 2=open).
	BreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "redis_circuit_breaker_state",
			Help: "Redis circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)
)
