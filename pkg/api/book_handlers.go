package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ajanick3/readinglist/pkg/errs"
	"github.com/ajanick3/readinglist/pkg/httputil"
	"github.com/ajanick3/readinglist/pkg/middleware"
	"github.com/ajanick3/readinglist/pkg/observability"
	"github.com/ajanick3/readinglist/pkg/store"
)

// BookHandlers serves the shared book catalog. The routes accept but do not
// require authentication.
type BookHandlers struct {
	books  store.BookStore
	logger *observability.Logger
}

// NewBookHandlers creates a new book handlers instance
func NewBookHandlers(books store.BookStore, logger *observability.Logger) *BookHandlers {
	return &BookHandlers{books: books, logger: logger}
}

// RegisterRoutes registers the catalog routes on the /api subrouter
func (h *BookHandlers) RegisterRoutes(router *mux.Router, optional *middleware.AuthMiddleware) {
	books := router.PathPrefix("/books").Subrouter()
	books.Use(optional.Handler)
	books.HandleFunc("", h.listBooks).Methods("GET")
	books.HandleFunc("/{id}", h.getBook).Methods("GET")
}

// listBooks handles GET /api/books?query=
func (h *BookHandlers) listBooks(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("query")

	books, err := h.books.Query(r.Context(), search)
	if err != nil {
		h.logger.WithError(err).Error("failed to query books")
		httputil.WriteAPIError(w, err)
		return
	}
	_ = httputil.WriteSuccess(w, booksResponse{Books: books})
}

// getBook handles GET /api/books/{id}
func (h *BookHandlers) getBook(w http.ResponseWriter, r *http.Request) {
	id := httputil.PathVar(r, "id")

	book, err := h.books.ReadByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.WriteAPIError(w, errs.NotFound("No book was found with the id of %s", id))
			return
		}
		httputil.WriteAPIError(w, err)
		return
	}
	_ = httputil.WriteSuccess(w, bookResponse{Book: book})
}
