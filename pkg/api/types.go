package api

import (
	"github.com/ajanick3/readinglist/pkg/store"
)

// userPayload is the user shape returned by the auth endpoints. It carries a
// fresh token and never any credential material.
type userPayload struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// userResponse wraps the user payload
type userResponse struct {
	User userPayload `json:"user"`
}

// listItemPayload is a list item expanded with its catalog book
type listItemPayload struct {
	ID         string      `json:"id"`
	BookID     string      `json:"bookId"`
	OwnerID    string      `json:"ownerId"`
	Rating     int         `json:"rating"`
	Notes      string      `json:"notes"`
	StartDate  int64       `json:"startDate"`
	FinishDate *int64      `json:"finishDate"`
	Book       *store.Book `json:"book,omitempty"`
}

// listItemResponse wraps a single expanded list item
type listItemResponse struct {
	ListItem listItemPayload `json:"listItem"`
}

// listItemsResponse wraps a collection of expanded list items
type listItemsResponse struct {
	ListItems []listItemPayload `json:"listItems"`
}

// bookResponse wraps a single catalog book
type bookResponse struct {
	Book *store.Book `json:"book"`
}

// booksResponse wraps a catalog search result
type booksResponse struct {
	Books []*store.Book `json:"books"`
}

// successResponse is the delete acknowledgement
type successResponse struct {
	Success bool `json:"success"`
}

func expandListItem(item *store.ListItem, book *store.Book) listItemPayload {
	return listItemPayload{
		ID:         item.ID,
		BookID:     item.BookID,
		OwnerID:    item.OwnerID,
		Rating:     item.Rating,
		Notes:      item.Notes,
		StartDate:  item.StartDate,
		FinishDate: item.FinishDate,
		Book:       book,
	}
}
