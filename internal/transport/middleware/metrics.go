package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/interpolice/interpolice-backend/internal/metrics"
)

// Metrics returns middleware that records request counts and latencies. The
// route label is the mux pattern when available, falling back to the raw path
// only for unmatched requests to keep cardinality bounded.
func Metrics(m *metrics.Metrics) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}

			m.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(sw.status)).Inc()
			m.HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}
