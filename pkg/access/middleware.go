package access

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/schoolkit/pkg/tenant"
)

// Require returns middleware that authorizes the principal and tenant found
// in the request context against req.
func (g *Guard) Require(req Requirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			p, _ := PrincipalFromContext(ctx)
			t, _ := tenant.FromContext(ctx)

			err := g.Authorize(ctx, p, t, req)
			for _, hook := range g.hooks {
				hook(ctx, p, req, err)
			}
			if err == nil {
				next.ServeHTTP(w, r)
				return
			}

			if IsDenial(err) {
				g.logger.InfoContext(ctx, "access denied",
					slog.String("requirement", req.String()),
					slog.String("reason", err.Error()),
				)
			} else {
				g.logger.ErrorContext(ctx, "access check failed",
					slog.String("requirement", req.String()),
					slog.Any("error", err),
				)
			}
			g.errorHandler(w, r, err)
		})
	}
}

// RequirePermission is Require for a "module:permission" string. A malformed
// string rejects every request with ErrInvalidPermissionFormat.
func (g *Guard) RequirePermission(permission string) func(http.Handler) http.Handler {
	req, err := ParsePermission(permission)
	if err != nil {
		return g.reject(err)
	}
	return g.Require(req)
}

// RequireString is Require for a ParseRequirement string. A malformed string
// rejects every request.
func (g *Guard) RequireString(requirement string) func(http.Handler) http.Handler {
	req, err := ParseRequirement(requirement)
	if err != nil {
		return g.reject(err)
	}
	return g.Require(req)
}

func (g *Guard) reject(err error) func(http.Handler) http.Handler {
	return func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			g.logger.ErrorContext(r.Context(), "invalid route requirement", slog.Any("error", err))
			g.errorHandler(w, r, err)
		})
	}
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrAuthenticationRequired):
		http.Error(w, "Authentication required", http.StatusUnauthorized)
	case errors.Is(err, tenant.ErrTenantNotFound):
		http.Error(w, "Tenant not found", http.StatusNotFound)
	case IsDenial(err):
		http.Error(w, "Forbidden", http.StatusForbidden)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
