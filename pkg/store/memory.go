package store

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryUsers is a map-backed UserStore safe for concurrent use, intended
// for development and tests.
type MemoryUsers struct {
	mu    sync.RWMutex
	users map[string]*User
}

// NewMemoryUsers creates an empty in-memory user store
func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{users: make(map[string]*User)}
}

// Insert stores the user under a fresh unique id
func (s *MemoryUsers) Insert(ctx context.Context, user *User) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *user
	stored.ID = uuid.NewString()
	s.users[stored.ID] = &stored

	out := stored
	return &out, nil
}

// ReadByID returns the user with the given id or ErrNotFound
func (s *MemoryUsers) ReadByID(ctx context.Context, id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *user
	return &out, nil
}

// ReadByUsername returns the user with the exact username or ErrNotFound
func (s *MemoryUsers) ReadByUsername(ctx context.Context, username string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Username == username {
			out := *user
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

// MemoryBooks is a map-backed BookStore safe for concurrent use
type MemoryBooks struct {
	mu    sync.RWMutex
	books map[string]*Book
}

// NewMemoryBooks creates an empty in-memory book store
func NewMemoryBooks() *MemoryBooks {
	return &MemoryBooks{books: make(map[string]*Book)}
}

// Insert stores a book under its own id
func (s *MemoryBooks) Insert(ctx context.Context, book *Book) error {
	if book.ID == "" {
		return errors.New("books must have an id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *book
	s.books[stored.ID] = &stored
	return nil
}

// ReadByID returns the book with the given id or ErrNotFound
func (s *MemoryBooks) ReadByID(ctx context.Context, id string) (*Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	book, ok := s.books[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *book
	return &out, nil
}

// ReadManyByID returns the books whose ids exist, skipping absent ids
func (s *MemoryBooks) ReadManyByID(ctx context.Context, ids []string) ([]*Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	books := make([]*Book, 0, len(ids))
	for _, id := range ids {
		if book, ok := s.books[id]; ok {
			out := *book
			books = append(books, &out)
		}
	}
	return books, nil
}

// Query returns books whose title or author contains the search string
func (s *MemoryBooks) Query(ctx context.Context, search string) ([]*Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(search)
	var books []*Book
	for _, book := range s.books {
		if needle == "" ||
			strings.Contains(strings.ToLower(book.Title), needle) ||
			strings.Contains(strings.ToLower(book.Author), needle) {
			out := *book
			books = append(books, &out)
		}
	}
	sort.Slice(books, func(i, j int) bool { return books[i].Title < books[j].Title })
	return books, nil
}

// MemoryListItems is a map-backed ListItemStore safe for concurrent use
type MemoryListItems struct {
	mu    sync.RWMutex
	items map[string]*ListItem
}

// NewMemoryListItems creates an empty in-memory list-item store
func NewMemoryListItems() *MemoryListItems {
	return &MemoryListItems{items: make(map[string]*ListItem)}
}

// Create stores a new item with default fields and a fresh unique id
func (s *MemoryListItems) Create(ctx context.Context, ownerID, bookID string) (*ListItem, error) {
	if bookID == "" {
		return nil, errors.New("new list items must have a bookId")
	}
	if ownerID == "" {
		return nil, errors.New("new list items must have an ownerId")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := &ListItem{
		ID:        uuid.NewString(),
		BookID:    bookID,
		OwnerID:   ownerID,
		Rating:    -1,
		StartDate: time.Now().UnixMilli(),
	}
	s.items[item.ID] = item

	out := *item
	return &out, nil
}

// ReadByID returns the item with the given id or ErrNotFound
func (s *MemoryListItems) ReadByID(ctx context.Context, id string) (*ListItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *item
	return &out, nil
}

// Query returns items matching the query's non-empty fields
func (s *MemoryListItems) Query(ctx context.Context, q ListItemQuery) ([]*ListItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var items []*ListItem
	for _, item := range s.items {
		if q.Matches(item) {
			out := *item
			items = append(items, &out)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].StartDate < items[j].StartDate })
	return items, nil
}

// Update replaces the stored item with the same id or returns ErrNotFound
func (s *MemoryListItems) Update(ctx context.Context, item *ListItem) (*ListItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[item.ID]; !ok {
		return nil, ErrNotFound
	}
	stored := *item
	s.items[stored.ID] = &stored

	out := stored
	return &out, nil
}

// Delete removes the item with the given id; absent ids are not an error
func (s *MemoryListItems) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}
