package store

import (
	"context"
	"errors"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedBooks is a read-through LRU cache in front of another BookStore.
// The catalog is read-heavy and individual books are immutable once inserted,
// so entries only need replacing when a book is re-inserted.
type CachedBooks struct {
	inner BookStore
	cache *lru.Cache[string, *Book]
}

// NewCachedBooks wraps the given store with an LRU cache of the given size
func NewCachedBooks(inner BookStore, size int) (*CachedBooks, error) {
	cache, err := lru.New[string, *Book](size)
	if err != nil {
		return nil, err
	}
	return &CachedBooks{inner: inner, cache: cache}, nil
}

// Insert writes through to the inner store and refreshes the cache entry
func (s *CachedBooks) Insert(ctx context.Context, book *Book) error {
	if err := s.inner.Insert(ctx, book); err != nil {
		return err
	}
	stored := *book
	s.cache.Add(stored.ID, &stored)
	return nil
}

// ReadByID serves from the cache when possible
func (s *CachedBooks) ReadByID(ctx context.Context, id string) (*Book, error) {
	if book, ok := s.cache.Get(id); ok {
		out := *book
		return &out, nil
	}
	book, err := s.inner.ReadByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cached := *book
	s.cache.Add(id, &cached)
	return book, nil
}

// ReadManyByID serves cached entries and fetches the rest in one pass
func (s *CachedBooks) ReadManyByID(ctx context.Context, ids []string) ([]*Book, error) {
	books := make([]*Book, 0, len(ids))
	for _, id := range ids {
		book, err := s.ReadByID(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, nil
}

// Query always hits the inner store; search results are not cached
func (s *CachedBooks) Query(ctx context.Context, search string) ([]*Book, error) {
	return s.inner.Query(ctx, search)
}
