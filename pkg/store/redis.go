package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	userKeyPrefix     = "user:"
	usernameKeyPrefix = "user:by-username:"
	bookKeyPrefix     = "book:"
	bookIndexKey      = "books"
	listItemKeyPrefix = "listitem:"
	ownerKeyPrefix    = "listitems:owner:"
)

// userRecord is the Redis wire form of a User. Salt and hash are stored
// here but never cross into the API types' JSON output.
type userRecord struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Salt     []byte `json:"salt"`
	Hash     []byte `json:"hash"`
}

// RedisUsers is a Redis-backed UserStore
type RedisUsers struct {
	client *redis.Client
}

// NewRedisUsers creates a user store over the given client
func NewRedisUsers(client *redis.Client) *RedisUsers {
	return &RedisUsers{client: client}
}

// Insert stores the user under a fresh unique id and indexes the username
func (s *RedisUsers) Insert(ctx context.Context, user *User) (*User, error) {
	stored := *user
	stored.ID = uuid.NewString()

	payload, err := json.Marshal(userRecord{
		ID:       stored.ID,
		Username: stored.Username,
		Salt:     stored.Salt,
		Hash:     stored.Hash,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling user: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, userKeyPrefix+stored.ID, payload, 0)
	pipe.Set(ctx, usernameKeyPrefix+stored.Username, stored.ID, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("storing user: %w", err)
	}
	return &stored, nil
}

// ReadByID returns the user with the given id or ErrNotFound
func (s *RedisUsers) ReadByID(ctx context.Context, id string) (*User, error) {
	payload, err := s.client.Get(ctx, userKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading user: %w", err)
	}

	var rec userRecord
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return nil, fmt.Errorf("unmarshaling user: %w", err)
	}
	return &User{ID: rec.ID, Username: rec.Username, Salt: rec.Salt, Hash: rec.Hash}, nil
}

// ReadByUsername resolves the username index and returns the user or ErrNotFound
func (s *RedisUsers) ReadByUsername(ctx context.Context, username string) (*User, error) {
	id, err := s.client.Get(ctx, usernameKeyPrefix+username).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("resolving username: %w", err)
	}
	return s.ReadByID(ctx, id)
}

// RedisBooks is a Redis-backed BookStore
type RedisBooks struct {
	client *redis.Client
}

// NewRedisBooks creates a book store over the given client
func NewRedisBooks(client *redis.Client) *RedisBooks {
	return &RedisBooks{client: client}
}

// Insert stores a book under its own id
func (s *RedisBooks) Insert(ctx context.Context, book *Book) error {
	if book.ID == "" {
		return errors.New("books must have an id")
	}
	payload, err := json.Marshal(book)
	if err != nil {
		return fmt.Errorf("marshaling book: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, bookKeyPrefix+book.ID, payload, 0)
	pipe.SAdd(ctx, bookIndexKey, book.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("storing book: %w", err)
	}
	return nil
}

// ReadByID returns the book with the given id or ErrNotFound
func (s *RedisBooks) ReadByID(ctx context.Context, id string) (*Book, error) {
	payload, err := s.client.Get(ctx, bookKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading book: %w", err)
	}

	var book Book
	if err := json.Unmarshal([]byte(payload), &book); err != nil {
		return nil, fmt.Errorf("unmarshaling book: %w", err)
	}
	return &book, nil
}

// ReadManyByID returns the books whose ids exist, skipping absent ids
func (s *RedisBooks) ReadManyByID(ctx context.Context, ids []string) ([]*Book, error) {
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

// Query returns books whose title or author contains the search string
func (s *RedisBooks) Query(ctx context.Context, search string) ([]*Book, error) {
	ids, err := s.client.SMembers(ctx, bookIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("listing books: %w", err)
	}

	needle := strings.ToLower(search)
	var books []*Book
	for _, id := range ids {
		book, err := s.ReadByID(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if needle == "" ||
			strings.Contains(strings.ToLower(book.Title), needle) ||
			strings.Contains(strings.ToLower(book.Author), needle) {
			books = append(books, book)
		}
	}
	sort.Slice(books, func(i, j int) bool { return books[i].Title < books[j].Title })
	return books, nil
}

// RedisListItems is a Redis-backed ListItemStore
type RedisListItems struct {
	client *redis.Client
}

// NewRedisListItems creates a list-item store over the given client
func NewRedisListItems(client *redis.Client) *RedisListItems {
	return &RedisListItems{client: client}
}

// Create stores a new item with default fields and a fresh unique id
func (s *RedisListItems) Create(ctx context.Context, ownerID, bookID string) (*ListItem, error) {
	if bookID == "" {
		return nil, errors.New("new list items must have a bookId")
	}
	if ownerID == "" {
		return nil, errors.New("new list items must have an ownerId")
	}

	item := &ListItem{
		ID:        uuid.NewString(),
		BookID:    bookID,
		OwnerID:   ownerID,
		Rating:    -1,
		StartDate: time.Now().UnixMilli(),
	}
	if err := s.write(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// ReadByID returns the item with the given id or ErrNotFound
func (s *RedisListItems) ReadByID(ctx context.Context, id string) (*ListItem, error) {
	payload, err := s.client.Get(ctx, listItemKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading list item: %w", err)
	}

	var item ListItem
	if err := json.Unmarshal([]byte(payload), &item); err != nil {
		return nil, fmt.Errorf("unmarshaling list item: %w", err)
	}
	return &item, nil
}

// Query returns items matching the query's non-empty fields. OwnerID is
// served from the owner index; BookID filters the result.
func (s *RedisListItems) Query(ctx context.Context, q ListItemQuery) ([]*ListItem, error) {
	if q.OwnerID == "" {
		return nil, errors.New("list item queries must be owner-scoped")
	}

	ids, err := s.client.SMembers(ctx, ownerKeyPrefix+q.OwnerID).Result()
	if err != nil {
		return nil, fmt.Errorf("listing owner items: %w", err)
	}

	var items []*ListItem
	for _, id := range ids {
		item, err := s.ReadByID(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if q.Matches(item) {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].StartDate < items[j].StartDate })
	return items, nil
}

// Update replaces the stored item with the same id or returns ErrNotFound
func (s *RedisListItems) Update(ctx context.Context, item *ListItem) (*ListItem, error) {
	if _, err := s.ReadByID(ctx, item.ID); err != nil {
		return nil, err
	}
	stored := *item
	if err := s.write(ctx, &stored); err != nil {
		return nil, err
	}
	out := stored
	return &out, nil
}

// Delete removes the item and its owner-index entry; absent ids are not an error
func (s *RedisListItems) Delete(ctx context.Context, id string) error {
	item, err := s.ReadByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, listItemKeyPrefix+id)
	pipe.SRem(ctx, ownerKeyPrefix+item.OwnerID, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("deleting list item: %w", err)
	}
	return nil
}

func (s *RedisListItems) write(ctx context.Context, item *ListItem) error {
	payload, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("marshaling list item: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, listItemKeyPrefix+item.ID, payload, 0)
	pipe.SAdd(ctx, ownerKeyPrefix+item.OwnerID, item.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("storing list item: %w", err)
	}
	return nil
}
