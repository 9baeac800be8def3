package authn

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/schoolkit/pkg/access"
)

// ErrorHandler writes the response for a rejected token.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

type config struct {
	errorHandler ErrorHandler
	logger       *slog.Logger
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

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Middleware stores the principal of a valid bearer token in the context.
// Rejections wrap access.ErrAuthenticationRequired so they map to 401.
func Middleware(v *Verifier, opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{
		errorHandler: func(w http.ResponseWriter, _ *http.Request, _ error) {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
		},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			p, err := v.Verify(ctx, token)
			switch {
			case err == nil:
				next.ServeHTTP(w, r.WithContext(access.WithPrincipal(ctx, p)))
			case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrUnknownPrincipal):
				cfg.logger.DebugContext(ctx, "bearer token rejected", slog.Any("error", err))
				cfg.errorHandler(w, r, errors.Join(access.ErrAuthenticationRequired, err))
			default:
				cfg.logger.ErrorContext(ctx, "load principal", slog.Any("error", err))
				cfg.errorHandler(w, r, err)
			}
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
