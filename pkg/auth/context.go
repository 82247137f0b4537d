package auth

import (
	"context"

	apperrors "fluxo-backend/pkg/errors"
)

// UserContext carries the authenticated user through the request lifecycle
type UserContext struct {
	UserID string
	Email  string
	Roles  []string
}

type contextKey struct{}

var userContextKey contextKey

// SetUserInContext stores the user context on the request context
func SetUserInContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext retrieves the authenticated user from the context
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	if !ok || user == nil {
		return nil, apperrors.NewUnauthorizedError("no user in context")
	}
	return user, nil
}
