package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTP Prometheus metrics for the debug listener.
var (
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "knowdex",
			Name:      "http_request_duration_seconds",
			Help:      "Latency of debug endpoint requests",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "knowdex",
			Name:      "http_requests_total",
			Help:      "Debug endpoint requests by method, route and status",
		},
		[]string{"method", "path", "status"},
	)
)

var httpMetricsRegistered bool

// RegisterHTTPMetrics registers Prometheus HTTP metrics. Must be called once from main.
func RegisterHTTPMetrics() {
	if httpMetricsRegistered {
		return
	}
	prometheus.MustRegister(httpRequestDuration, httpRequestsTotal)
	httpMetricsRegistered = true
}

// Middleware observes duration and count per {method, route pattern, status}.
func Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			// The route pattern is known only after routing.
			path := normalizePath(chi.RouteContext(r.Context()).RoutePattern())
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK // handler wrote nothing
			}

			lbls := []string{r.Method, path, strconv.Itoa(status)}
			httpRequestDuration.WithLabelValues(lbls...).Observe(time.Since(start).Seconds())
			httpRequestsTotal.WithLabelValues(lbls...).Inc()
		})
	}
}

// normalizePath keeps the label set bounded: every unmatched request
// collapses into "unknown".
func normalizePath(path string) string {
	if path == "" {
		return "unknown"
	}
	return path
}
