// Package identity verifies bearer tokens and proxies account operations to
// the hosted identity provider.
package identity

import "context"

// User is the narrow identity attached to authenticated requests. Anything
// else the provider returns stays at the boundary.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type contextKey string

const userContextKey contextKey = "identity.user"

// WithUser attaches an identity to the context.
func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts the identity attached by the auth middleware.
func FromContext(ctx context.Context) (User, bool) {
	user, ok := ctx.Value(userContextKey).(User)
	return user, ok
}
