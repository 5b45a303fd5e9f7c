package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ajanick3/readinglist/pkg/auth"
	"github.com/ajanick3/readinglist/pkg/errs"
	"github.com/ajanick3/readinglist/pkg/store"
)

func newTestCodec(t *testing.T) *auth.TokenCodec {
	t.Helper()
	codec, err := auth.NewTokenCodec([]byte("test-secret"))
	if err != nil {
		t.Fatalf("NewTokenCodec error: %v", err)
	}
	return codec
}

func insertTestUser(t *testing.T, users store.UserStore) *store.User {
	t.Helper()
	user, err := users.Insert(context.Background(), &store.User{Username: "kody", Salt: []byte("s"), Hash: []byte("h")})
	if err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	return user
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body %q: %v", w.Body.String(), err)
	}
	return body
}

func TestAuthMiddleware_Required(t *testing.T) {
	codec := newTestCodec(t)
	users := store.NewMemoryUsers()
	user := insertTestUser(t, users)

	m := NewAuthMiddleware(codec, users, false)

	t.Run("rejects request without Authorization header", func(t *testing.T) {
		handler := m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be called")
		}))

		req := httptest.NewRequest("GET", "/api/auth/me", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
		body := decodeBody(t, w)
		if body["code"] != errs.CodeCredentialsRequired {
			t.Errorf("code = %q, want %q", body["code"], errs.CodeCredentialsRequired)
		}
		if body["message"] != "No authorization token was found" {
			t.Errorf("message = %q", body["message"])
		}
	})

	t.Run("rejects malformed Authorization headers", func(t *testing.T) {
		handler := m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be called")
		}))

		for _, header := range []string{"token123", "Basic dXNlcjpwYXNz", "Bearer"} {
			t.Run(header, func(t *testing.T) {
				req := httptest.NewRequest("GET", "/api/auth/me", nil)
				req.Header.Set("Authorization", header)
				w := httptest.NewRecorder()
				handler.ServeHTTP(w, req)

				if w.Code != http.StatusUnauthorized {
					t.Errorf("status = %d, want 401", w.Code)
				}
				if body := decodeBody(t, w); body["code"] != errs.CodeCredentialsInvalid {
					t.Errorf("code = %q, want %q", body["code"], errs.CodeCredentialsInvalid)
				}
			})
		}
	})

	t.Run("rejects invalid token", func(t *testing.T) {
		handler := m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be called")
		}))

		req := httptest.NewRequest("GET", "/api/auth/me", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
		if body := decodeBody(t, w); body["code"] != errs.CodeCredentialsInvalid {
			t.Errorf("code = %q, want %q", body["code"], errs.CodeCredentialsInvalid)
		}
	})

	t.Run("rejects valid token whose user no longer exists", func(t *testing.T) {
		tok, err := codec.Encode("ghost-user")
		if err != nil {
			t.Fatalf("Encode error: %v", err)
		}

		handler := m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be called")
		}))

		req := httptest.NewRequest("GET", "/api/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
		if body := decodeBody(t, w); body["code"] != errs.CodeCredentialsInvalid {
			t.Errorf("code = %q, want %q", body["code"], errs.CodeCredentialsInvalid)
		}
	})

	t.Run("attaches resolved user for a valid token", func(t *testing.T) {
		tok, err := codec.Encode(user.ID)
		if err != nil {
			t.Fatalf("Encode error: %v", err)
		}

		var resolved *store.User
		handler := m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			resolved = UserFrom(r)
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest("GET", "/api/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if resolved == nil {
			t.Fatal("user not attached to context")
		}
		if resolved.ID != user.ID || resolved.Username != user.Username {
			t.Errorf("resolved user = %+v, want %+v", resolved, user)
		}
	})
}

func TestAuthMiddleware_Optional(t *testing.T) {
	codec := newTestCodec(t)
	users := store.NewMemoryUsers()
	user := insertTestUser(t, users)

	m := NewAuthMiddleware(codec, users, true)

	t.Run("proceeds anonymously without a header", func(t *testing.T) {
		called := false
		handler := m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			if UserFrom(r) != nil {
				t.Error("anonymous request should have no user")
			}
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest("GET", "/api/books", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if !called {
			t.Error("handler should have been called")
		}
	})

	t.Run("treats a malformed header as missing", func(t *testing.T) {
		called := false
		handler := m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest("GET", "/api/books", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if !called {
			t.Error("handler should have been called")
		}
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})

	t.Run("still rejects a well-formed but invalid token", func(t *testing.T) {
		handler := m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be called")
		}))

		req := httptest.NewRequest("GET", "/api/books", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("resolves the user when a valid token is supplied", func(t *testing.T) {
		tok, _ := codec.Encode(user.ID)

		var resolved *store.User
		handler := m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			resolved = UserFrom(r)
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest("GET", "/api/books", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if resolved == nil || resolved.ID != user.ID {
			t.Errorf("resolved = %+v, want user %s", resolved, user.ID)
		}
	})
}
