// metrics/metrics.go
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// reqDuration is a histogram of HTTP request durations in seconds, labeled
// by path, method, and status code.
var reqDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "http_request_duration_seconds",
		Help: "Duration of HTTP requests.",
		// buckets in seconds
		Buckets: []float64{0.01, 0.1, 0.3, 1.2, 5},
	},
	[]string{"path", "method", "status"},
)

// preflightTotal counts OPTIONS requests traversing the pipeline. With the
// CORS middleware installed these never reach a handler, so the counter is
// effectively the preflight volume.
var preflightTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "cors_preflight_requests_total",
		Help: "Number of OPTIONS (CORS preflight) requests received.",
	},
)

// RegisterDefault registers the default Go runtime and process collectors,
// plus the HTTP request duration histogram and the preflight counter. It is
// safe (and intended) to call this once at startup.
func RegisterDefault(logger *zap.Logger) {
	mustRegister(logger, "Go collector", collectors.NewGoCollector())
	mustRegister(logger, "process collector", collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	mustRegister(logger, "HTTP request histogram", reqDuration)
	mustRegister(logger, "CORS preflight counter", preflightTotal)
}

// mustRegister attempts to register a Prometheus collector. If registration
// fails for a reason other than AlreadyRegisteredError, it logs a fatal error
// (which calls os.Exit) or panics if no logger is provided.
func mustRegister(logger *zap.Logger, name string, c prometheus.Collector) {
	if err := prometheus.Register(c); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
			// Already registered is fine - this can happen in tests or if
			// RegisterDefault is called multiple times.
			return
		}
		if logger != nil {
			logger.Fatal("failed to register "+name, zap.Error(err))
		} else {
			panic("metrics: failed to register " + name + ": " + err.Error())
		}
	}
}

// HTTPMetrics is a middleware that records request duration into the
// http_request_duration_seconds histogram and counts CORS preflights.
//
// It uses the chi route pattern (e.g., "/users/{id}") instead of the actual
// request path (e.g., "/users/123") to prevent label cardinality explosion.
func HTTPMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		protoMajor := r.ProtoMajor
		if protoMajor < 1 {
			protoMajor = 1
		}
		ww := middleware.NewWrapResponseWriter(w, protoMajor)

		if r.Method == http.MethodOptions {
			preflightTotal.Inc()
		}

		next.ServeHTTP(ww, r)

		duration := time.Since(start).Seconds()
		statusCode := ww.Status()
		// Status 0 means WriteHeader was never called; per net/http semantics
		// the handler completed without setting a status, which is a 200.
		if statusCode == 0 {
			statusCode = http.StatusOK
		}
		if statusCode < 100 || statusCode > 599 {
			statusCode = http.StatusInternalServerError
		}

		// Use the route pattern to avoid cardinality explosion from path
		// parameters; fall back to the raw path outside a chi router.
		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}

		reqDuration.WithLabelValues(
			path,
			r.Method,
			strconv.Itoa(statusCode),
		).Observe(duration)
	})
}

// Handler returns an http.Handler that exposes the Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
