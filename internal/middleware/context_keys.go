package middleware

import "context"

// contextKey is a private type for context keys set by this package.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey   = contextKey("logger")
	principalIDKey = contextKey("principalID")
)

// GetPrincipalFromCtx retrieves the authenticated principal ID from the context.
// It returns the principal ID and a boolean indicating if it was found.
func GetPrincipalFromCtx(ctx context.Context) (string, bool) {
	val := ctx.Value(principalIDKey)
	if val == nil {
		return "", false
	}
	principalID, ok := val.(string)
	if !ok || principalID == "" {
		return "", false
	}
	return principalID, true
}

// WithPrincipal returns a context carrying the given principal ID.
// Exposed for tests that bypass the auth middleware.
func WithPrincipal(ctx context.Context, principalID string) context.Context {
	return context.WithValue(ctx, principalIDKey, principalID)
}
