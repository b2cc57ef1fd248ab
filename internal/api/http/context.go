package http

import (
	"context"

	"promodesk-backend/internal/domain"
)

type contextKey string

const scopeContextKey contextKey = "access-scope"

func contextWithScope(ctx context.Context, scope domain.AccessScope) context.Context {
	return context.WithValue(ctx, scopeContextKey, scope)
}

// ScopeFromContext returns the access scope placed by the auth middleware.
func ScopeFromContext(ctx context.Context) (domain.AccessScope, bool) {
	scope, ok := ctx.Value(scopeContextKey).(domain.AccessScope)
	return scope, ok
}
