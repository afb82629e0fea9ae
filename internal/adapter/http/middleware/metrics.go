package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/iho/gotransfers/internal/infrastructure/metrics"
)

// Metrics records request counts and durations on the shared registry.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := &metricsRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			duration := time.Since(start).Seconds()
			path := normalizePath(r.URL.Path)

			m.HTTPRequests.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
			m.HTTPDuration.WithLabelValues(r.Method, path).Observe(duration)
		})
	}
}

type metricsRecorder struct {
	http.ResponseWriter

	statusCode int
}

func (r *metricsRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// normalizePath collapses transfer ids so the path label stays low
// cardinality.
func normalizePath(path string) string {
	const prefix = "/api/v1/transfers/"
	if strings.HasPrefix(path, prefix) && len(path) > len(prefix) {
		return prefix + ":id"
	}
	return path
}
