// Package errs defines the request-terminal error taxonomy for the API.
//
// Every rejection path in the auth core and the handlers produces one of
// these errors; httputil converts them into an HTTP status plus a JSON body
// with a human-readable message (and a machine code where one is defined).
// Errors here are never retried and never silently swallowed.
package errs
