// AngelaMos | 2026
// metrics.go

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/templates/project-records/internal/metrics"
)

// Metrics records request counts and latency labelled by the chi route
// pattern, so /v1/projects/{id} is one series rather than one per id.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m.HTTPInFlight.Inc()
			defer m.HTTPInFlight.Dec()

			start := time.Now()
			ww := newStatusWriter(w)

			next.ServeHTTP(ww, r)

			m.ObserveHTTPRequest(
				r.Method,
				routePattern(r),
				strconv.Itoa(ww.status),
				time.Since(start),
			)
		})
	}
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}
