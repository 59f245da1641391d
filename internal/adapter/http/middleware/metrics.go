package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/Temutjin2k/kart-laptimes/pkg/metrics"
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Metrics middleware records HTTP metrics
func (m *Middleware) Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Skip metrics endpoint to avoid recursion
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		metrics.HttpRequestsInFlight.WithLabelValues(m.serviceName).Inc()
		defer metrics.HttpRequestsInFlight.WithLabelValues(m.serviceName).Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		metrics.RecordHTTPMetrics(m.serviceName, r.Method, routeLabel(r.URL.Path), rw.statusCode, time.Since(start))
	})
}

// routeLabel collapses paths to the known routes to keep label cardinality bounded.
func routeLabel(path string) string {
	switch {
	case path == "/" || path == "/index.php" || path == "/api/laps" || path == "/health":
		return path
	case strings.HasPrefix(path, "/swagger/"):
		return "/swagger/"
	default:
		return "other"
	}
}
