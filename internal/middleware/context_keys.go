package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// contextKey is a private type for context values set by middleware.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	userIDKey    = contextKey("userID")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin
// context (or the underlying request context) and a boolean indicating
// whether it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userIDVal, exists := c.Get(string(userIDKey)); exists {
		userID, ok := userIDVal.(string)
		return userID, ok
	}
	if userIDVal := c.Request.Context().Value(userIDKey); userIDVal != nil {
		userID, ok := userIDVal.(string)
		return userID, ok
	}
	return "", false
}

// GetUserIDFromCtx retrieves the authenticated user ID from a plain context.
// Services use this to attribute audit entries to the acting user.
func GetUserIDFromCtx(ctx context.Context) (string, bool) {
	if userIDVal := ctx.Value(userIDKey); userIDVal != nil {
		userID, ok := userIDVal.(string)
		return userID, ok
	}
	return "", false
}

// WithUserID returns a context carrying the resolved actor id. Exposed for
// tests that exercise services without the HTTP layer.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
