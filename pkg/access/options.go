package access

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Option configures a Guard.
type Option func(*Guard)

// ErrorHandler writes the response for a rejected request.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// DecisionHook observes every middleware decision; err is nil on allow.
type DecisionHook func(ctx context.Context, p *Principal, req Requirement, err error)

// WithClock sets the time source used for grant validity.
func WithClock(now func() time.Time) Option {
	return func(g *Guard) {
		if now != nil {
			g.now = now
		}
	}
}

// WithLogger sets the logger for middleware decisions.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Guard) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithErrorHandler sets the handler for denied requests.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(g *Guard) {
		if handler != nil {
			g.errorHandler = handler
		}
	}
}

// WithDecisionHook registers an observer, e.g. a metrics recorder.
func WithDecisionHook(hook DecisionHook) Option {
	return func(g *Guard) {
		if hook != nil {
			g.hooks = append(g.hooks, hook)
		}
	}
}
