// cors/builder.go
package cors

import "net/http"

// Builder assembles a CORS policy through named setters. It starts from
// DefaultOptions, so only the knobs you care about need to be set.
//
// Example:
//
//	mw := cors.New().
//	    AllowOrigin("https://app.example.com").
//	    AllowMethods("GET", "POST").
//	    AllowHeaders("Authorization", "Content-Type").
//	    MaxAge(3600).
//	    Handler()
//	r.Use(mw)
//
// A Builder is not safe for concurrent use; the middleware it produces is.
type Builder struct {
	opts Options
}

// New returns a Builder seeded with DefaultOptions.
func New() *Builder {
	return &Builder{opts: DefaultOptions()}
}

// AllowOrigin sets the Access-Control-Allow-Origin value.
func (b *Builder) AllowOrigin(origin string) *Builder {
	b.opts.AllowedOrigin = origin
	return b
}

// AllowMethods replaces the allowed method list. Order is preserved.
func (b *Builder) AllowMethods(methods ...string) *Builder {
	b.opts.AllowedMethods = methods
	return b
}

// AllowHeaders replaces the allowed request header list. Order is preserved.
func (b *Builder) AllowHeaders(headers ...string) *Builder {
	b.opts.AllowedHeaders = headers
	return b
}

// ExposeHeaders replaces the exposed response header list.
func (b *Builder) ExposeHeaders(headers ...string) *Builder {
	b.opts.ExposedHeaders = headers
	return b
}

// AllowCredentials controls the Access-Control-Allow-Credentials header.
func (b *Builder) AllowCredentials(allow bool) *Builder {
	b.opts.AllowCredentials = allow
	return b
}

// MaxAge sets Access-Control-Max-Age in seconds; 0 omits the header.
func (b *Builder) MaxAge(seconds int) *Builder {
	b.opts.MaxAge = seconds
	return b
}

// PreflightStatus selects the status written for OPTIONS requests.
// Anything other than http.StatusNoContent is treated as http.StatusOK.
func (b *Builder) PreflightStatus(code int) *Builder {
	b.opts.PreflightStatus = code
	return b
}

// Options returns a copy of the accumulated policy.
func (b *Builder) Options() Options {
	return b.opts
}

// Handler builds the middleware for the accumulated policy.
func (b *Builder) Handler() func(http.Handler) http.Handler {
	return Handler(b.opts)
}
