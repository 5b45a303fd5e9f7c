// Package contextkeys provides centralized context key definitions
//
// All context keys used across the application must be defined here. This
// prevents typos, documents dependencies, and makes key usage discoverable.
package contextkeys

import "context"

// Key is the type for context keys to prevent collisions
type Key string

const (
	// UserKey contains the resolved *store.User for an authenticated request.
	// Set by: middleware.AuthMiddleware (pkg/middleware/auth.go)
	// Absent for anonymous requests on optional-auth routes.
	UserKey Key = "auth_user"

	// ListItemKey contains the *store.ListItem loaded by the ownership guard.
	// Set by: middleware.ListItemGuard (pkg/middleware/listitem.go)
	// Required by: list-item read/update/delete handlers
	ListItemKey Key = "list_item"

	// RequestIDKey contains the request ID string (UUID)
	// Set by: httputil.RequestIDMiddleware
	// Used by: logger, response headers
	RequestIDKey Key = "request_id"
)

// WithUser adds the authenticated user to the context
func WithUser(ctx context.Context, user interface{}) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

// WithListItem adds the guarded list item to the context
func WithListItem(ctx context.Context, item interface{}) context.Context {
	return context.WithValue(ctx, ListItemKey, item)
}

// WithRequestID adds the request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}
