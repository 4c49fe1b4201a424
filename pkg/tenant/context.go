package tenant

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// contextKey is a private type to prevent collisions with other context keys.
type contextKey struct{}

// WithScope installs the scope into the context. The returned context carries
// the scope for its entire dynamic extent, including every goroutine and
// continuation derived from it. Installing a scope on a context that already
// carries one shadows the outer scope; the outer context is untouched, so the
// outer scope is observed again as soon as code returns to it. Scopes never
// merge.
func WithScope(ctx context.Context, scope Scope) context.Context {
	return context.WithValue(ctx, contextKey{}, scope)
}

// ScopeFromContext returns the innermost scope installed on the context.
// ok is false when no scope was ever installed, which means the caller is
// executing outside any request extent.
func ScopeFromContext(ctx context.Context) (Scope, bool) {
	scope, ok := ctx.Value(contextKey{}).(Scope)
	return scope, ok
}

// Run executes fn with the scope installed for fn's entire dynamic extent.
// It mirrors the middleware's installation step for non-HTTP entry points
// (background jobs, CLI tooling) that need to execute tenant-scoped code.
func Run(ctx context.Context, scope Scope, fn func(context.Context) error) error {
	return fn(WithScope(ctx, scope))
}

// IDFromContext retrieves just the tenant ID from the active scope.
// Returns zero UUID and false for the no-tenant scope or when no scope is set.
func IDFromContext(ctx context.Context) (uuid.UUID, bool) {
	scope, ok := ScopeFromContext(ctx)
	if !ok {
		return uuid.UUID{}, false
	}
	return scope.TenantID()
}

// LoggerExtractor returns a ContextExtractor for the logger that annotates
// log records with the active tenant ID.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := IDFromContext(ctx); ok {
			return slog.String("tenant_id", id.String()), true
		}
		return slog.Attr{}, false
	}
}
