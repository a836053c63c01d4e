// router/router.go
package router

import (
	"github.com/dalemusser/crumpet/config"
	"github.com/dalemusser/crumpet/cors"
	"github.com/dalemusser/crumpet/logging"
	"github.com/dalemusser/crumpet/metrics"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// New creates a chi.Router pre-wired with crumpet's standard middleware stack:
// - RequestID
// - RealIP
// - Recoverer (panic → 500)
// - metrics HTTP middleware
// - request logging
// - CORS (driven by coreCfg.CORS; identity middleware when disabled)
// - NotFound / MethodNotAllowed JSON handlers
// It does NOT mount health, version, pprof, etc.; those remain app-level decisions.
//
// CORS sits in front of routing so that OPTIONS preflights for any path are
// answered without reaching the 404/405 handlers.
func New(coreCfg *config.CoreConfig, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()

	// Request context & safety
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(logging.Recoverer(logger))

	// Metrics
	r.Use(metrics.HTTPMetrics)

	// Access logging
	r.Use(logging.RequestLogger(logger))

	// CORS
	r.Use(cors.FromConfig(coreCfg))

	// NotFound / MethodNotAllowed JSON handlers
	r.NotFound(NotFoundHandler(logger))
	r.MethodNotAllowed(MethodNotAllowedHandler(logger))

	return r
}
