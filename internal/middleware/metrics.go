// internal/middleware/metrics.go
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	leadWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_writes_total",
			Help: "Total number of lead create and update operations",
		},
		[]string{"operation", "status"},
	)

	statusTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_status_transitions_total",
			Help: "Total number of lead status transitions",
		},
		[]string{"from", "to"},
	)

	feedEventsDelivered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_events_delivered_total",
			Help: "Total number of change feed events delivered to subscribers",
		},
	)

	feedEventsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_events_dropped_total",
			Help: "Total number of change feed events dropped for slow subscribers",
		},
	)

	pitchGenerations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pitch_generations_total",
			Help: "Total number of sales pitch generations",
		},
		[]string{"source"},
	)
)

func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		// Use the route template so path labels stay low-cardinality
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(duration)
	}
}

func RecordLeadWrite(operation, status string) {
	leadWrites.WithLabelValues(operation, status).Inc()
}

func RecordStatusTransition(from, to string) {
	statusTransitions.WithLabelValues(from, to).Inc()
}

func RecordFeedEventDelivered() {
	feedEventsDelivered.Inc()
}

func RecordFeedEventDropped() {
	feedEventsDropped.Inc()
}

func RecordPitchGeneration(source string) {
	pitchGenerations.WithLabelValues(source).Inc()
}
