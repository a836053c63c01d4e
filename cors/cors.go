// cors/cors.go
package cors

import (
	"net/http"
	"strconv"
	"strings"
)

// Options configures the CORS middleware.
//
// An Options value is read once when the middleware is constructed; the
// resulting handler never looks at it again. The joined header values are
// computed at construction time and applied verbatim to every response, so
// a single middleware instance is safe to share across concurrent requests.
type Options struct {
	// AllowedOrigin is the value emitted as Access-Control-Allow-Origin.
	// Empty means "*".
	AllowedOrigin string

	// AllowedMethods is emitted comma-joined as Access-Control-Allow-Methods.
	// Order is preserved.
	AllowedMethods []string

	// AllowedHeaders is emitted comma-joined as Access-Control-Allow-Headers.
	// Order is preserved.
	AllowedHeaders []string

	// ExposedHeaders is emitted comma-joined as Access-Control-Expose-Headers.
	// Omitted when empty.
	ExposedHeaders []string

	// AllowCredentials emits Access-Control-Allow-Credentials: true.
	AllowCredentials bool

	// MaxAge is the Access-Control-Max-Age value in seconds.
	// Omitted when 0.
	MaxAge int

	// PreflightStatus is the status code written for OPTIONS requests.
	// Must be http.StatusOK or http.StatusNoContent; 0 means http.StatusOK.
	PreflightStatus int
}

// DefaultOptions returns the zero-configuration policy:
//   - Allow all origins ("*")
//   - Allow DELETE, GET, HEAD, OPTIONS, PATCH, POST, PUT
//   - Allow the Authorization and Content-Type request headers
//   - Credentials allowed
//   - Preflight results cacheable for 24 hours
//   - Preflight responses answered with 200
func DefaultOptions() Options {
	return Options{
		AllowedOrigin: "*",
		AllowedMethods: []string{
			http.MethodDelete,
			http.MethodGet,
			http.MethodHead,
			http.MethodOptions,
			http.MethodPatch,
			http.MethodPost,
			http.MethodPut,
		},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           86400,
		PreflightStatus:  http.StatusOK,
	}
}

// Default returns a CORS middleware with the DefaultOptions policy.
//
// If/when you want to tighten this (e.g., a specific origin), use Handler
// with your own Options or the Builder; runtime behavior is identical once
// constructed.
func Default() func(http.Handler) http.Handler {
	return Handler(DefaultOptions())
}

// header is one precomputed name/value pair.
type header struct {
	name  string
	value string
}

// compile flattens opts into the exact header pairs every response gets.
func compile(opts Options) []header {
	origin := opts.AllowedOrigin
	if origin == "" {
		origin = "*"
	}

	hs := []header{
		{"Access-Control-Allow-Origin", origin},
		{"Access-Control-Allow-Methods", strings.Join(opts.AllowedMethods, ",")},
		{"Access-Control-Allow-Headers", strings.Join(opts.AllowedHeaders, ",")},
	}
	if len(opts.ExposedHeaders) > 0 {
		hs = append(hs, header{"Access-Control-Expose-Headers", strings.Join(opts.ExposedHeaders, ",")})
	}
	if opts.AllowCredentials {
		hs = append(hs, header{"Access-Control-Allow-Credentials", "true"})
	}
	if opts.MaxAge > 0 {
		hs = append(hs, header{"Access-Control-Max-Age", strconv.Itoa(opts.MaxAge)})
	}
	return hs
}

// policyWriter applies the compiled policy headers immediately before the
// first write, so they land after the downstream handler has finished
// populating the header map and replace any same-named value it set.
type policyWriter struct {
	http.ResponseWriter
	headers []header
	applied bool
}

func (w *policyWriter) apply() {
	if w.applied {
		return
	}
	w.applied = true
	h := w.ResponseWriter.Header()
	for _, hdr := range w.headers {
		h.Set(hdr.name, hdr.value)
	}
}

func (w *policyWriter) WriteHeader(status int) {
	w.apply()
	w.ResponseWriter.WriteHeader(status)
}

func (w *policyWriter) Write(b []byte) (int, error) {
	w.apply()
	return w.ResponseWriter.Write(b)
}

// Handler returns a middleware that applies the given CORS policy.
//
// OPTIONS requests are answered immediately with the preflight status and
// only the policy headers; the next handler is never invoked. All other
// requests pass through to the next handler, and the policy headers are
// merged into its response just before the header block is flushed,
// overwriting any same-named header downstream may have set; downstream
// status and body are untouched.
//
// Example:
//
//	r.Use(cors.Handler(cors.Options{
//	    AllowedOrigin:  "https://app.example.com",
//	    AllowedMethods: []string{"GET", "POST"},
//	    AllowedHeaders: []string{"Authorization"},
//	}))
func Handler(opts Options) func(http.Handler) http.Handler {
	headers := compile(opts)

	status := opts.PreflightStatus
	if status != http.StatusNoContent {
		status = http.StatusOK
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				h := w.Header()
				for _, hdr := range headers {
					h.Set(hdr.name, hdr.value)
				}
				w.WriteHeader(status)
				return
			}

			pw := &policyWriter{ResponseWriter: w, headers: headers}
			next.ServeHTTP(pw, r)
			// Handlers that return without writing anything still get the
			// policy headers, ahead of net/http's implicit 200.
			pw.apply()
		})
	}
}
