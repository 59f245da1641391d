package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)

	HttpRequestsInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
		[]string{"service"},
	)

	// Business metrics
	PageViewsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "page_views_total",
			Help: "Total number of dispatched pages by resolved route",
		},
		[]string{"page", "method"},
	)

	LapsSubmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "laps_submitted_total",
			Help: "Total number of lap submissions by outcome",
		},
		[]string{"status"},
	)

	LapsDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "laps_deleted_total",
			Help: "Total number of laps removed from lap logs",
		},
	)

	UsersRegisteredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "users_registered_total",
			Help: "Total number of driver registrations",
		},
	)

	ProfilesUpdatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "profiles_updated_total",
			Help: "Total number of profile edits",
		},
	)

	SessionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sessions_total",
			Help: "Session lifecycle events",
		},
		[]string{"event"},
	)

	SessionStoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_store_operations_total",
			Help: "Total number of session store operations",
		},
		[]string{"backend", "operation", "status"},
	)

	SessionStoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "session_store_operation_duration_seconds",
			Help:    "Session store operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "operation"},
	)
)

// RecordHTTPMetrics records HTTP request metrics
func RecordHTTPMetrics(service, method, path string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	HttpRequestsTotal.WithLabelValues(service, method, path, status).Inc()
	HttpRequestDuration.WithLabelValues(service, method, path, status).Observe(duration.Seconds())
}

// RecordLapSubmission records the outcome of a lap form submission: "ok" or "rejected".
func RecordLapSubmission(status string) {
	LapsSubmittedTotal.WithLabelValues(status).Inc()
}

// RecordSessionEvent records a session lifecycle event: "created" or "destroyed".
func RecordSessionEvent(event string) {
	SessionsTotal.WithLabelValues(event).Inc()
}

// RecordSessionStoreOp records session store metrics
func RecordSessionStoreOp(backend, operation string, err error, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
	}
	SessionStoreOperationsTotal.WithLabelValues(backend, operation, status).Inc()
	SessionStoreOperationDuration.WithLabelValues(backend, operation).Observe(duration.Seconds())
}
