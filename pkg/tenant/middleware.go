package tenant

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

// Middleware resolves the tenant for each request and stores it in the
// request context. Administrative-context requests pass through without a
// tenant; unmatched requests are rejected unless WithOptional is set.
func Middleware(resolver *Resolver, opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{
		errorHandler: defaultErrorHandler,
		pathParam:    ChiURLParam(DefaultPathParam),
		logger:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, skip := range cfg.skipPaths {
				if strings.HasPrefix(r.URL.Path, skip) {
					next.ServeHTTP(w, r)
					return
				}
			}

			ctx := r.Context()
			t, err := resolver.Resolve(ctx, r.Host, cfg.pathParam(r))
			for _, hook := range cfg.hooks {
				hook(r, t, err)
			}

			switch {
			case err == nil && t == nil:
				next.ServeHTTP(w, r)
			case err == nil:
				next.ServeHTTP(w, r.WithContext(WithTenant(ctx, t)))
			case errors.Is(err, ErrTenantNotFound):
				if cfg.optional {
					next.ServeHTTP(w, r)
					return
				}
				cfg.logger.DebugContext(ctx, "tenant not resolved",
					slog.String("host", r.Host),
					slog.String("path", r.URL.Path),
					slog.Bool("inactive", errors.Is(err, ErrTenantInactive)),
				)
				cfg.errorHandler(w, r, err)
			default:
				cfg.logger.ErrorContext(ctx, "tenant resolution failed",
					slog.String("host", r.Host),
					slog.Any("error", err),
				)
				cfg.errorHandler(w, r, err)
			}
		})
	}
}

// RequireTenant ensures a tenant is present in the context.
// Use it on tenant-only routes that may also be reached from the admin host.
func RequireTenant(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = defaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := FromContext(r.Context()); !ok {
				errorHandler(w, r, ErrNoTenantInContext)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
