package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ajanick3/readinglist/pkg/auth"
	"github.com/ajanick3/readinglist/pkg/observability"
	"github.com/ajanick3/readinglist/pkg/store"
)

type testEnv struct {
	server    *Server
	handler   http.Handler
	users     *store.MemoryUsers
	books     *store.MemoryBooks
	listItems *store.MemoryListItems
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	codec, err := auth.NewTokenCodec([]byte("test-secret"))
	require.NoError(t, err)

	users := store.NewMemoryUsers()
	books := store.NewMemoryBooks()
	listItems := store.NewMemoryListItems()

	srv := NewServer(Options{
		TokenCodec:     codec,
		Users:          users,
		Books:          books,
		ListItems:      listItems,
		Logger:         observability.NewLogger(observability.ErrorLevel, io.Discard),
		AllowedOrigins: []string{"*"},
	})

	return &testEnv{
		server:    srv,
		handler:   srv.Handler(),
		users:     users,
		books:     books,
		listItems: listItems,
	}
}

// do sends a JSON request through the full middleware stack
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// doWithHeader sends a request with a raw Authorization header value
func (e *testEnv) doWithHeader(t *testing.T, method, path, authHeader string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", authHeader)

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// register creates a user through the API and returns its payload
func (e *testEnv) register(t *testing.T, username, password string) userPayload {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, "register failed: %s", rec.Body.String())

	var resp userResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.User
}

// addBook inserts a catalog book directly into the store
func (e *testEnv) addBook(t *testing.T, title, author string) *store.Book {
	t.Helper()

	book := &store.Book{
		ID:     uuid.NewString(),
		Title:  title,
		Author: author,
	}
	require.NoError(t, e.books.Insert(context.Background(), book))
	return book
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(dest))
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	decodeJSON(t, rec, &body)
	return body.Message
}
