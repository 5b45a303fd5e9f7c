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

// ListItemHandlers handles the per-user reading-list CRUD
type ListItemHandlers struct {
	listItems store.ListItemStore
	books     store.BookStore
	logger    *observability.Logger
}

// NewListItemHandlers creates a new list-item handlers instance
func NewListItemHandlers(listItems store.ListItemStore, books store.BookStore, logger *observability.Logger) *ListItemHandlers {
	return &ListItemHandlers{
		listItems: listItems,
		books:     books,
		logger:    logger,
	}
}

// RegisterRoutes registers the list-item routes on the /api subrouter. All
// routes require authentication; the item routes additionally run the
// ownership guard.
func (h *ListItemHandlers) RegisterRoutes(router *mux.Router, required *middleware.AuthMiddleware, guard *middleware.ListItemGuard) {
	items := router.PathPrefix("/list-items").Subrouter()
	items.Use(required.Handler)
	items.HandleFunc("", h.list).Methods("GET")
	items.HandleFunc("", h.create).Methods("POST")

	item := items.PathPrefix("/{id}").Subrouter()
	item.Use(guard.Handler)
	item.HandleFunc("", h.get).Methods("GET")
	item.HandleFunc("", h.update).Methods("PUT")
	item.HandleFunc("", h.delete).Methods("DELETE")
}

// list handles GET /api/list-items
func (h *ListItemHandlers) list(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r)
	if user == nil {
		httputil.WriteAPIError(w, errs.NoToken())
		return
	}

	items, err := h.listItems.Query(r.Context(), store.ListItemQuery{OwnerID: user.ID})
	if err != nil {
		h.logger.WithError(err).Error("failed to query list items")
		httputil.WriteAPIError(w, err)
		return
	}

	bookIDs := make([]string, 0, len(items))
	for _, item := range items {
		bookIDs = append(bookIDs, item.BookID)
	}
	books, err := h.books.ReadManyByID(r.Context(), bookIDs)
	if err != nil {
		h.logger.WithError(err).Error("failed to load books for list items")
		httputil.WriteAPIError(w, err)
		return
	}
	booksByID := make(map[string]*store.Book, len(books))
	for _, book := range books {
		booksByID[book.ID] = book
	}

	payload := make([]listItemPayload, 0, len(items))
	for _, item := range items {
		payload = append(payload, expandListItem(item, booksByID[item.BookID]))
	}
	_ = httputil.WriteSuccess(w, listItemsResponse{ListItems: payload})
}

// create handles POST /api/list-items
func (h *ListItemHandlers) create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r)
	if user == nil {
		httputil.WriteAPIError(w, errs.NoToken())
		return
	}

	var req struct {
		BookID string `json:"bookId"`
	}
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if req.BookID == "" {
		httputil.WriteAPIError(w, errs.Validation("No bookId provided"))
		return
	}

	existing, err := h.listItems.Query(r.Context(), store.ListItemQuery{OwnerID: user.ID, BookID: req.BookID})
	if err != nil {
		httputil.WriteAPIError(w, err)
		return
	}
	if len(existing) > 0 {
		httputil.WriteAPIError(w, errs.Validation(
			"User %s already has a list item for the book with the ID %s", user.ID, req.BookID))
		return
	}

	item, err := h.listItems.Create(r.Context(), user.ID, req.BookID)
	if err != nil {
		h.logger.WithError(err).Error("failed to create list item")
		httputil.WriteAPIError(w, err)
		return
	}

	h.writeItem(w, r, item)
}

// get handles GET /api/list-items/{id}
func (h *ListItemHandlers) get(w http.ResponseWriter, r *http.Request) {
	item := middleware.ListItemFrom(r)
	if item == nil {
		httputil.WriteAPIError(w, errs.NotFound("No list item was found with the id of %s", httputil.PathVar(r, "id")))
		return
	}
	h.writeItem(w, r, item)
}

// update handles PUT /api/list-items/{id}. Only fields present in the body
// change; absent fields keep their stored values.
func (h *ListItemHandlers) update(w http.ResponseWriter, r *http.Request) {
	item := middleware.ListItemFrom(r)
	if item == nil {
		httputil.WriteAPIError(w, errs.NotFound("No list item was found with the id of %s", httputil.PathVar(r, "id")))
		return
	}

	var req struct {
		Rating     *int    `json:"rating"`
		Notes      *string `json:"notes"`
		StartDate  *int64  `json:"startDate"`
		FinishDate *int64  `json:"finishDate"`
	}
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	updated := *item
	if req.Rating != nil {
		updated.Rating = *req.Rating
	}
	if req.Notes != nil {
		updated.Notes = *req.Notes
	}
	if req.StartDate != nil {
		updated.StartDate = *req.StartDate
	}
	if req.FinishDate != nil {
		updated.FinishDate = req.FinishDate
	}

	saved, err := h.listItems.Update(r.Context(), &updated)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.WriteAPIError(w, errs.NotFound("No list item was found with the id of %s", item.ID))
			return
		}
		h.logger.WithError(err).Error("failed to update list item")
		httputil.WriteAPIError(w, err)
		return
	}

	h.writeItem(w, r, saved)
}

// delete handles DELETE /api/list-items/{id}
func (h *ListItemHandlers) delete(w http.ResponseWriter, r *http.Request) {
	item := middleware.ListItemFrom(r)
	if item == nil {
		httputil.WriteAPIError(w, errs.NotFound("No list item was found with the id of %s", httputil.PathVar(r, "id")))
		return
	}

	if err := h.listItems.Delete(r.Context(), item.ID); err != nil {
		h.logger.WithError(err).Error("failed to delete list item")
		httputil.WriteAPIError(w, err)
		return
	}
	_ = httputil.WriteSuccess(w, successResponse{Success: true})
}

func (h *ListItemHandlers) writeItem(w http.ResponseWriter, r *http.Request, item *store.ListItem) {
	book, err := h.books.ReadByID(r.Context(), item.BookID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		httputil.WriteAPIError(w, err)
		return
	}
	_ = httputil.WriteSuccess(w, listItemResponse{ListItem: expandListItem(item, book)})
}
