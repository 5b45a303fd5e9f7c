package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ajanick3/readinglist/pkg/auth"
	"github.com/ajanick3/readinglist/pkg/contextkeys"
	"github.com/ajanick3/readinglist/pkg/errs"
	"github.com/ajanick3/readinglist/pkg/httputil"
	"github.com/ajanick3/readinglist/pkg/store"
)

// AuthMiddleware authenticates requests from a bearer token
type AuthMiddleware struct {
	codec    *auth.TokenCodec
	users    store.UserStore
	optional bool // If true, allow requests without auth
}

// NewAuthMiddleware creates a new authentication middleware. With optional
// set, requests without a usable Authorization header proceed anonymously;
// otherwise they are rejected with 401.
func NewAuthMiddleware(codec *auth.TokenCodec, users store.UserStore, optional bool) *AuthMiddleware {
	return &AuthMiddleware{
		codec:    codec,
		users:    users,
		optional: optional,
	}
}

// Handler wraps an HTTP handler with authentication
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Extract token from Authorization header
		// Format: "Bearer <token>"
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			if m.optional {
				next.ServeHTTP(w, r)
				return
			}
			httputil.WriteAPIError(w, errs.NoToken())
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			// A malformed header reads as no header on optional routes and
			// as bad credentials on required ones.
			if m.optional {
				next.ServeHTTP(w, r)
				return
			}
			httputil.WriteAPIError(w, errs.InvalidToken("invalid authorization header format"))
			return
		}

		userID, err := m.codec.Decode(parts[1])
		if err != nil {
			httputil.WriteAPIError(w, err)
			return
		}

		user, err := m.users.ReadByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				httputil.WriteAPIError(w, errs.InvalidToken("invalid authorization token"))
				return
			}
			httputil.WriteAPIError(w, err)
			return
		}

		ctx := contextkeys.WithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFrom extracts the authenticated user from the request, or nil for
// anonymous requests on optional-auth routes
func UserFrom(r *http.Request) *store.User {
	user, ok := r.Context().Value(contextkeys.UserKey).(*store.User)
	if !ok {
		return nil
	}
	return user
}
