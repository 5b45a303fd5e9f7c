package middleware

import (
	"errors"
	"net/http"

	"github.com/ajanick3/readinglist/pkg/contextkeys"
	"github.com/ajanick3/readinglist/pkg/errs"
	"github.com/ajanick3/readinglist/pkg/httputil"
	"github.com/ajanick3/readinglist/pkg/store"
)

// ListItemGuard is the ownership authorization check shared by the list-item
// read, update, and delete handlers. It loads the item named by the {id}
// path variable, verifies the caller owns it, and attaches it to the request
// context for the downstream handler.
type ListItemGuard struct {
	listItems store.ListItemStore
}

// NewListItemGuard creates a guard over the given store
func NewListItemGuard(listItems store.ListItemStore) *ListItemGuard {
	return &ListItemGuard{listItems: listItems}
}

// Handler wraps an HTTP handler with the ownership check. It must run after
// AuthMiddleware; the caller identity comes from the request context.
func (g *ListItemGuard) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httputil.PathVar(r, "id")

		item, err := g.listItems.ReadByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				httputil.WriteAPIError(w, errs.NotFound("No list item was found with the id of %s", id))
				return
			}
			httputil.WriteAPIError(w, err)
			return
		}

		user := UserFrom(r)
		if user == nil || item.OwnerID != user.ID {
			callerID := ""
			if user != nil {
				callerID = user.ID
			}
			httputil.WriteAPIError(w, errs.Forbidden(
				"User with id %s is not authorized to access the list item %s", callerID, id))
			return
		}

		ctx := contextkeys.WithListItem(r.Context(), item)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ListItemFrom extracts the guarded list item from the request
func ListItemFrom(r *http.Request) *store.ListItem {
	item, ok := r.Context().Value(contextkeys.ListItemKey).(*store.ListItem)
	if !ok {
		return nil
	}
	return item
}
