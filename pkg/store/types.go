package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a record does not exist
var ErrNotFound = errors.New("not found")

// User is a registered account. Salt and Hash together form the stored
// credential pair; they are created at registration, never mutated, and must
// never be serialized into API responses.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Salt     []byte `json:"-"`
	Hash     []byte `json:"-"`
}

// Book is a catalog record
type Book struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	CoverImageURL string `json:"coverImageUrl"`
	PageCount     int    `json:"pageCount"`
	Publisher     string `json:"publisher"`
	Synopsis      string `json:"synopsis"`
}

// ListItem is a per-user reading-list entry referencing a catalog book.
// Dates are Unix milliseconds; FinishDate is null until the book is finished.
type ListItem struct {
	ID         string `json:"id"`
	BookID     string `json:"bookId"`
	OwnerID    string `json:"ownerId"`
	Rating     int    `json:"rating"`
	Notes      string `json:"notes"`
	StartDate  int64  `json:"startDate"`
	FinishDate *int64 `json:"finishDate"`
}

// ListItemQuery selects list items by exact match on its non-empty fields
type ListItemQuery struct {
	OwnerID string
	BookID  string
}

// Matches reports whether the item satisfies every non-empty query field
func (q ListItemQuery) Matches(item *ListItem) bool {
	if q.OwnerID != "" && item.OwnerID != q.OwnerID {
		return false
	}
	if q.BookID != "" && item.BookID != q.BookID {
		return false
	}
	return true
}

// UserStore persists user records
type UserStore interface {
	// Insert stores the user, assigning a fresh unique id, and returns the
	// stored record.
	Insert(ctx context.Context, user *User) (*User, error)
	// ReadByID returns the user with the given id or ErrNotFound.
	ReadByID(ctx context.Context, id string) (*User, error)
	// ReadByUsername returns the user with the exact username or ErrNotFound.
	ReadByUsername(ctx context.Context, username string) (*User, error)
}

// BookStore persists catalog records
type BookStore interface {
	Insert(ctx context.Context, book *Book) error
	// ReadByID returns the book with the given id or ErrNotFound.
	ReadByID(ctx context.Context, id string) (*Book, error)
	// ReadManyByID returns the books whose ids are in the given set,
	// skipping ids that do not exist.
	ReadManyByID(ctx context.Context, ids []string) ([]*Book, error)
	// Query returns books whose title or author contains the search string
	// (case-insensitive). An empty search returns all books.
	Query(ctx context.Context, search string) ([]*Book, error)
}

// ListItemStore persists reading-list entries
type ListItemStore interface {
	// Create stores a new list item for the owner/book pair with default
	// fields and a fresh unique id.
	Create(ctx context.Context, ownerID, bookID string) (*ListItem, error)
	// ReadByID returns the item with the given id or ErrNotFound.
	ReadByID(ctx context.Context, id string) (*ListItem, error)
	// Query returns the items matching the query's non-empty fields.
	Query(ctx context.Context, q ListItemQuery) ([]*ListItem, error)
	// Update replaces the stored item with the same id or returns ErrNotFound.
	Update(ctx context.Context, item *ListItem) (*ListItem, error)
	// Delete removes the item with the given id; deleting an absent id is
	// not an error.
	Delete(ctx context.Context, id string) error
}
