package routebind

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/schoolkit/pkg/tenant"
)

// Option configures a Binder.
type Option func(*Binder)

// ErrorHandler writes the response when binding fails.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// BindHook observes every middleware binding; err is nil on success.
type BindHook func(ctx context.Context, kind Kind, err error)

// WithErrorHandler sets a custom error handler.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(b *Binder) {
		if handler != nil {
			b.errorHandler = handler
		}
	}
}

// WithLogger sets a custom logger for the middleware.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Binder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithBindHook registers an observer, e.g. a metrics recorder.
func WithBindHook(hook BindHook) Option {
	return func(b *Binder) {
		if hook != nil {
			b.hooks = append(b.hooks, hook)
		}
	}
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrEntityNotFound), errors.Is(err, tenant.ErrTenantNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
