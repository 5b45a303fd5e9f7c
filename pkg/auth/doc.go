// Package auth implements the credential and token primitives:
//
//   - salted password hashing and constant-time verification
//   - encoding a user identity into a signed bearer token and verifying it
//
// Both are synchronous, CPU-bound, and touch no shared mutable state beyond
// the immutable signing secret, so they are safe for concurrent use.
package auth
