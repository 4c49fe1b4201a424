package jwt

import "context"

type claimsContextKey struct{}

// WithClaims stores parsed access claims in the context.
func WithClaims(ctx context.Context, claims AccessClaims) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, claims)
}

// ClaimsFromContext returns the access claims installed by the middleware.
func ClaimsFromContext(ctx context.Context) (AccessClaims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(AccessClaims)
	return claims, ok
}
