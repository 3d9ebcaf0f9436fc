package auth

import "context"

type contextKey struct{}

// WithClaims stores decoded session claims on the request context.
func WithClaims(ctx context.Context, claims SessionClaims) context.Context {
	return context.WithValue(ctx, contextKey{}, claims)
}

// ClaimsFromContext retrieves claims placed by the session middleware.
func ClaimsFromContext(ctx context.Context) (SessionClaims, bool) {
	claims, ok := ctx.Value(contextKey{}).(SessionClaims)
	return claims, ok
}
