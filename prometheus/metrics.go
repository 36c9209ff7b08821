package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	// Event operation counter
	EventOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedule_event_operations_total",
			Help: "Total number of event operations",
		},
		[]string{"operation"}, // operation can be "create", "update", "delete", "approve", "reject"
	)

	// Approval decision counter
	ApprovalDecisionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedule_approval_decisions_total",
			Help: "Total number of approval workflow decisions",
		},
		[]string{"decision"}, // "approved" or "rejected"
	)

	// Calendar query counter
	CalendarQueryCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "schedule_calendar_queries_total",
			Help: "Total number of calendar window queries",
		},
	)

	// Expanded instance counter
	ExpandedInstanceCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "schedule_expanded_instances_total",
			Help: "Total number of recurrence instances produced by expansion",
		},
	)

	// User upsert counter
	UserEnsureCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "schedule_user_ensure_total",
			Help: "Total number of user upserts on authenticated contact",
		},
	)

	// HTTP request counter by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedule_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)

	// Error counters
	SchedulingErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedule_errors_total",
			Help: "Total number of scheduling errors",
		},
		[]string{"kind"}, // kind can be "forbidden", "not_found", "conflict" etc.
	)
)

// Histogram metrics
var (
	// Request duration
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "schedule_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	// Database operation duration
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "schedule_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // operation can be "query", "insert", "update", "delete"
	)

	// Recurrence expansion duration
	ExpansionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "schedule_expansion_duration_seconds",
			Help:    "Duration of recurrence expansion per calendar query in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// Gauge metrics
var (
	// Pending events awaiting a decision
	PendingEventsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "schedule_pending_events",
			Help: "Number of events currently awaiting approval",
		},
	)

	// System info
	InfoGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "schedule_info",
			Help: "Information about the scheduling service",
		},
		[]string{"version"},
	)
)

func init() {
	// Register counters
	prometheus.MustRegister(EventOperationCounter)
	prometheus.MustRegister(ApprovalDecisionCounter)
	prometheus.MustRegister(CalendarQueryCounter)
	prometheus.MustRegister(ExpandedInstanceCounter)
	prometheus.MustRegister(UserEnsureCounter)
	prometheus.MustRegister(HTTPRequestCounter)
	prometheus.MustRegister(SchedulingErrorCounter)

	// Register histograms
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(DBOperationDuration)
	prometheus.MustRegister(ExpansionDuration)

	// Register gauges
	prometheus.MustRegister(PendingEventsGauge)
	prometheus.MustRegister(InfoGauge)

	// Set initial service info
	InfoGauge.With(prometheus.Labels{"version": "1.0.0"}).Set(1)
}

// GetPrometheusHandler returns an HTTP handler for the Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// TrackDBOperation measures database operation durations
func TrackDBOperation(operation string) func(time.Time) {
	startTime := time.Now()
	return func(endTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DBOperationDuration.With(prometheus.Labels{
			"operation": operation,
		}).Observe(duration)
	}
}

// TrackExpansion measures the recurrence expansion portion of a calendar query
func TrackExpansion() func() {
	startTime := time.Now()
	return func() {
		ExpansionDuration.Observe(time.Since(startTime).Seconds())
	}
}

// MetricsMiddleware creates a middleware function that captures metrics for each request
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			// Execute the request handler
			err := next(c)

			// Record request duration
			duration := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)
			endpoint := c.Path()
			method := c.Request().Method

			// Record metrics
			RequestDuration.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Observe(duration)

			HTTPRequestCounter.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Inc()

			return err
		}
	}
}

// RecordEventOperation records an event operation by type
func RecordEventOperation(operation string) {
	EventOperationCounter.With(prometheus.Labels{"operation": operation}).Inc()
}

// RecordApprovalDecision records an approval workflow decision
func RecordApprovalDecision(decision string) {
	ApprovalDecisionCounter.With(prometheus.Labels{"decision": decision}).Inc()
}

// RecordSchedulingError records a scheduling error by kind
func RecordSchedulingError(kind string) {
	SchedulingErrorCounter.With(prometheus.Labels{"kind": kind}).Inc()
}

// RecordExpandedInstances adds to the expanded instance counter
func RecordExpandedInstances(count int) {
	ExpandedInstanceCounter.Add(float64(count))
}

// UpdatePendingEvents updates the pending events gauge
func UpdatePendingEvents(count int) {
	PendingEventsGauge.Set(float64(count))
}
