package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcomes recorded on DownstreamCalls
const (
	OutcomeSuccess     = "success"
	OutcomeRejected    = "rejected"
	OutcomeUnavailable = "unavailable"
)

var (
	// RequestsTotal tracks total HTTP requests
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "endpoint", "status"},
	)

	// RequestDuration tracks HTTP request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "endpoint"},
	)

	// CircuitBreakerState tracks circuit breaker state (0=closed, 1=open, 2=half-open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
		},
		[]string{"service", "circuit_name"},
	)

	// CircuitBreakerFailures tracks calls that failed through a circuit breaker
	CircuitBreakerFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_failures_total",
			Help: "Total number of circuit breaker failures",
		},
		[]string{"service", "circuit_name"},
	)

	// DownstreamCalls counts calls to peer services by outcome
	DownstreamCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "downstream_calls_total",
			Help: "Calls to peer services by target and outcome",
		},
		[]string{"service", "target", "outcome"},
	)

	// BestEffortFailures counts side effects that failed and were dropped
	BestEffortFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "best_effort_failures_total",
			Help: "Best-effort side effects that failed and were not retried",
		},
		[]string{"service", "call"},
	)

	// PriceSyncOutcomes counts reconciler results (applied, resolved, retried, dropped)
	PriceSyncOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "price_sync_outcomes_total",
			Help: "Outcomes of queued auction price updates",
		},
		[]string{"outcome"},
	)

	// EventsPublished counts lifecycle events by routing key and result
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Lifecycle events published to the message broker",
		},
		[]string{"routing_key", "result"},
	)
)

// PrometheusMiddleware creates a Gin middleware for automatic metrics collection
func PrometheusMiddleware(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		RequestsTotal.WithLabelValues(
			serviceName,
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()

		RequestDuration.WithLabelValues(
			serviceName,
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}
