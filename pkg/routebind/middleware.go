package routebind

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/schoolkit/pkg/tenant"
)

// Teacher binds the chi URL parameter param to a teacher of the current tenant.
func (b *Binder) Teacher(param string) func(http.Handler) http.Handler {
	return b.middleware(KindTeacher, param, func(ctx context.Context, raw string, t *tenant.Tenant) (context.Context, error) {
		teacher, err := b.BindTeacher(ctx, raw, t)
		if err != nil {
			return ctx, err
		}
		return WithTeacher(ctx, teacher), nil
	})
}

// Student binds the chi URL parameter param to a student of the current tenant.
func (b *Binder) Student(param string) func(http.Handler) http.Handler {
	return b.middleware(KindStudent, param, func(ctx context.Context, raw string, t *tenant.Tenant) (context.Context, error) {
		student, err := b.BindStudent(ctx, raw, t)
		if err != nil {
			return ctx, err
		}
		return WithStudent(ctx, student), nil
	})
}

type bindFunc func(ctx context.Context, raw string, t *tenant.Tenant) (context.Context, error)

func (b *Binder) middleware(kind Kind, param string, bind bindFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			t, _ := tenant.FromContext(ctx)

			bound, err := bind(ctx, chi.URLParam(r, param), t)
			for _, hook := range b.hooks {
				hook(ctx, kind, err)
			}
			if err == nil {
				next.ServeHTTP(w, r.WithContext(bound))
				return
			}

			switch {
			case errors.Is(err, ErrEntityNotFound), errors.Is(err, tenant.ErrTenantNotFound):
				b.logger.DebugContext(ctx, "route entity not found",
					slog.String("kind", string(kind)),
					slog.String("param", param),
				)
			case errors.Is(err, ErrInvalidNaturalKey):
				b.logger.ErrorContext(ctx, "invalid route parameter",
					slog.String("kind", string(kind)),
					slog.String("param", param),
					slog.Any("error", err),
				)
			default:
				b.logger.ErrorContext(ctx, "route binding failed",
					slog.String("kind", string(kind)),
					slog.Any("error", err),
				)
			}
			b.errorHandler(w, r, err)
		})
	}
}
