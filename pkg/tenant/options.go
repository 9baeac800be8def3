package tenant

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// DefaultPathParam is the chi URL parameter carrying a tenant slug.
const DefaultPathParam = "tenant"

// ErrorHandler handles errors that occur during tenant resolution.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// PathParamFunc extracts the tenant slug from the request route, if any.
type PathParamFunc func(r *http.Request) string

// ResolveHook observes every resolution outcome. Either value may be nil.
type ResolveHook func(r *http.Request, t *Tenant, err error)

// config holds middleware configuration.
type config struct {
	errorHandler ErrorHandler
	pathParam    PathParamFunc
	skipPaths    []string
	optional     bool
	logger       *slog.Logger
	hooks        []ResolveHook
}

// Option configures the middleware.
type Option func(*config)

// WithErrorHandler sets a custom error handler.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(c *config) {
		if handler != nil {
			c.errorHandler = handler
		}
	}
}

// WithPathParam reads the tenant slug from the named chi URL parameter.
func WithPathParam(name string) Option {
	return func(c *config) {
		c.pathParam = ChiURLParam(name)
	}
}

// WithPathParamFunc sets a custom slug extractor, for routers other than chi.
func WithPathParamFunc(fn PathParamFunc) Option {
	return func(c *config) {
		if fn != nil {
			c.pathParam = fn
		}
	}
}

// WithSkipPaths sets path prefixes that bypass tenant resolution.
func WithSkipPaths(paths ...string) Option {
	return func(c *config) {
		c.skipPaths = append(c.skipPaths, paths...)
	}
}

// WithOptional lets requests with no matching tenant continue without one
// instead of being rejected with ErrTenantNotFound.
func WithOptional(optional bool) Option {
	return func(c *config) {
		c.optional = optional
	}
}

// WithLogger sets a custom logger for the middleware.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithResolveHook registers an observer, e.g. a metrics recorder.
func WithResolveHook(hook ResolveHook) Option {
	return func(c *config) {
		if hook != nil {
			c.hooks = append(c.hooks, hook)
		}
	}
}

// ChiURLParam returns a PathParamFunc reading the named chi URL parameter.
func ChiURLParam(name string) PathParamFunc {
	return func(r *http.Request) string {
		return chi.URLParam(r, name)
	}
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrTenantNotFound), errors.Is(err, ErrNoTenantInContext):
		http.Error(w, "Tenant not found", http.StatusNotFound)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
