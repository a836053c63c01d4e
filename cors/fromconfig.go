// cors/fromconfig.go
package cors

import (
	"net/http"

	"github.com/dalemusser/crumpet/config"
)

// FromConfig returns a middleware that applies CORS behavior based on the
// given CoreConfig's CORS section.
//
// If coreCfg.CORS.EnableCORS is false, it returns an identity middleware that
// does nothing. This makes it safe to unconditionally call:
//
//	r.Use(cors.FromConfig(coreCfg))
//
// and let config decide whether CORS is active.
func FromConfig(coreCfg *config.CoreConfig) func(http.Handler) http.Handler {
	if coreCfg == nil || !coreCfg.CORS.EnableCORS {
		// No-op middleware
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return Handler(Options{
		AllowedOrigin:    coreCfg.CORS.CORSAllowedOrigin,
		AllowedMethods:   coreCfg.CORS.CORSAllowedMethods,
		AllowedHeaders:   coreCfg.CORS.CORSAllowedHeaders,
		ExposedHeaders:   coreCfg.CORS.CORSExposedHeaders,
		AllowCredentials: coreCfg.CORS.CORSAllowCredentials,
		MaxAge:           coreCfg.CORS.CORSMaxAge,
		PreflightStatus:  coreCfg.CORS.CORSPreflightStatus,
	})
}
