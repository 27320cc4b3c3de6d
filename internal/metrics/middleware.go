package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "contentd",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "contentd",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "contentd",
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests being served",
		},
	)
)

func init() {
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpRequestsInFlight)
}

// Middleware records HTTP request duration and count.
// A request whose handler panics is recorded as 500.
func Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			httpRequestsInFlight.Inc()

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			completed := false
			defer func() {
				httpRequestsInFlight.Dec()

				status := ww.Status()
				switch {
				case !completed:
					// handler panicked; the recoverer upstream answers 500
					status = http.StatusInternalServerError
				case status == 0:
					status = http.StatusOK
				}
				observe(r, status, start)
			}()

			next.ServeHTTP(ww, r)
			completed = true
		})
	}
}

func observe(r *http.Request, status int, start time.Time) {
	path := "unknown"
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		path = normalizePath(rctx.RoutePattern())
	}
	code := strconv.Itoa(status)
	httpRequestDuration.WithLabelValues(r.Method, path, code).Observe(time.Since(start).Seconds())
	httpRequestsTotal.WithLabelValues(r.Method, path, code).Inc()
}

// normalizePath normalizes paths to prevent high cardinality in metrics labels.
func normalizePath(path string) string {
	if path == "" {
		return "unknown"
	}
	return path
}
