package auth

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"

	"github.com/ajanick3/readinglist/pkg/errs"
)

const (
	saltLength = 16
	iterations = 100_000
	keyLength  = 64
)

// Credential is a stored salt+hash pair. The same password with the same salt
// always derives the same hash; the hash is not reversible to the password.
type Credential struct {
	Salt []byte
	Hash []byte
}

// HashPassword derives a Credential from a plaintext password. A fresh random
// salt is drawn per call, so two calls with the same password never produce
// the same pair.
func HashPassword(password string) (Credential, error) {
	if password == "" {
		return Credential{}, errs.Validation("password can't be blank")
	}
	if strings.TrimSpace(password) == "" {
		return Credential{}, errs.Validation("password is not strong enough")
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return Credential{}, fmt.Errorf("generating salt: %w", err)
	}

	return Credential{
		Salt: salt,
		Hash: pbkdf2.Key([]byte(password), salt, iterations, keyLength, sha512.New),
	}, nil
}

// VerifyPassword recomputes the derivation with the stored salt and compares
// it against the stored hash in constant time. A wrong password returns
// false, never an error.
func VerifyPassword(password string, cred Credential) bool {
	if len(cred.Salt) == 0 || len(cred.Hash) == 0 {
		return false
	}
	derived := pbkdf2.Key([]byte(password), cred.Salt, iterations, keyLength, sha512.New)
	return subtle.ConstantTimeCompare(derived, cred.Hash) == 1
}
