package access

import (
	"context"
	"log/slog"
)

// principalCtxKey is the context key for the authenticated principal.
type principalCtxKey struct{}

// WithPrincipal stores the authenticated principal in the context.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey{}, p)
}

// PrincipalFromContext retrieves the authenticated principal from the context.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalCtxKey{}).(*Principal)
	if !ok || p == nil {
		return nil, false
	}
	return p, true
}

// LoggerExtractor enriches log records with the principal ID and role.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		p, ok := PrincipalFromContext(ctx)
		if !ok {
			return slog.Attr{}, false
		}
		return slog.Group("principal",
			slog.String("id", p.ID.String()),
			slog.String("role", p.Role.String()),
		), true
	}
}
