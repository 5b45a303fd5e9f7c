// Package store defines the record stores the API depends on and their
// backing implementations.
//
// The auth core and the handlers only see the UserStore, BookStore and
// ListItemStore interfaces; the backing implementation (in-memory map, Redis)
// is selected at startup and swappable without touching the callers. Each
// backend serializes its own mutations; no cross-record transactions are
// provided or needed.
package store
