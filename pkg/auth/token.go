package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ajanick3/readinglist/pkg/errs"
)

// Claims is the identity payload embedded in a bearer token. UserID is the
// only datum the server puts in; the system is stateless so no expiry is set.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// TokenCodec encodes user identities into signed bearer tokens and verifies
// them. The signing secret is fixed at construction and immutable for the
// process lifetime; concurrent use needs no locking.
type TokenCodec struct {
	secret []byte
}

// NewTokenCodec returns a codec signing with the given secret. An empty
// secret is a construction error so a misconfigured process fails closed at
// startup rather than issuing unverifiable tokens.
func NewTokenCodec(secret []byte) (*TokenCodec, error) {
	if len(secret) == 0 {
		return nil, errors.New("token signing secret must not be empty")
	}
	return &TokenCodec{secret: secret}, nil
}

// Encode serializes the user id into a signed HS256 token. Tokens carry no
// expiry: they stay valid until the signing secret changes.
func (c *TokenCodec) Encode(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: userID})
	return token.SignedString(c.secret)
}

// Decode verifies a token and returns the user id it claims. Any parse or
// signature failure yields a credentials_invalid error; the underlying HMAC
// comparison is constant-time.
func (c *TokenCodec) Decode(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return "", errs.InvalidToken("invalid authorization token")
	}
	if claims.UserID == "" {
		return "", errs.InvalidToken("invalid authorization token")
	}
	return claims.UserID, nil
}
