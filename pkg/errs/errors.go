package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Machine-readable codes carried alongside 401 responses so clients can
// dispatch without parsing messages.
const (
	CodeCredentialsRequired = "credentials_required"
	CodeCredentialsInvalid  = "credentials_invalid"
)

// Error is an API error with a fixed HTTP status. Code is optional and only
// set for authentication failures.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// Validation reports malformed or missing input (400).
func Validation(format string, args ...interface{}) *Error {
	return &Error{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// Conflict reports a duplicate unique field. The reference API answers these
// with 400 rather than 409.
func Conflict(format string, args ...interface{}) *Error {
	return &Error{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// NoToken reports a missing authorization token on a protected route (401).
func NoToken() *Error {
	return &Error{
		Status:  http.StatusUnauthorized,
		Code:    CodeCredentialsRequired,
		Message: "No authorization token was found",
	}
}

// InvalidToken reports a token that failed verification, a malformed bearer
// header on a protected route, or a token whose user no longer exists (401).
func InvalidToken(format string, args ...interface{}) *Error {
	return &Error{
		Status:  http.StatusUnauthorized,
		Code:    CodeCredentialsInvalid,
		Message: fmt.Sprintf(format, args...),
	}
}

// Forbidden reports an authenticated but unentitled request (403).
func Forbidden(format string, args ...interface{}) *Error {
	return &Error{Status: http.StatusForbidden, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports an absent resource (404).
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Status: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

// As unwraps err into an *Error if it is one.
func As(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
