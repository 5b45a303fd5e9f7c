// Package api implements the reading-list HTTP API: registration, login,
// and per-user list items over a shared book catalog.
package api
