// Package middleware provides the request authentication middleware and the
// list-item ownership guard.
//
// AuthMiddleware turns a bearer token into a resolved user on the request
// context; ListItemGuard binds a fetched list item to the identity that owns
// it before the read/update/delete handlers run.
package middleware
