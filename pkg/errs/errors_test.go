package errs

import (
	"fmt"
	"net/http"
	"testing"
)

func TestConstructors(t *testing.T) {
	cases := []struct {
		name       string
		err        *Error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"validation", Validation("username can't be blank"), http.StatusBadRequest, "", "username can't be blank"},
		{"conflict", Conflict("username taken"), http.StatusBadRequest, "", "username taken"},
		{"no token", NoToken(), http.StatusUnauthorized, CodeCredentialsRequired, "No authorization token was found"},
		{"invalid token", InvalidToken("invalid token"), http.StatusUnauthorized, CodeCredentialsInvalid, "invalid token"},
		{"forbidden", Forbidden("User with id %s is not authorized to access the list item %s", "u1", "li1"), http.StatusForbidden, "", "User with id u1 is not authorized to access the list item li1"},
		{"not found", NotFound("No list item was found with the id of %s", "li1"), http.StatusNotFound, "", "No list item was found with the id of li1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Status != tc.wantStatus {
				t.Errorf("Status = %d, want %d", tc.err.Status, tc.wantStatus)
			}
			if tc.err.Code != tc.wantCode {
				t.Errorf("Code = %q, want %q", tc.err.Code, tc.wantCode)
			}
			if tc.err.Error() != tc.wantMsg {
				t.Errorf("Error() = %q, want %q", tc.err.Error(), tc.wantMsg)
			}
		})
	}
}

func TestAs(t *testing.T) {
	orig := NotFound("gone")
	wrapped := fmt.Errorf("handling request: %w", orig)

	apiErr, ok := As(wrapped)
	if !ok {
		t.Fatal("expected wrapped *Error to unwrap")
	}
	if apiErr != orig {
		t.Error("unwrapped to a different error")
	}

	if _, ok := As(fmt.Errorf("plain")); ok {
		t.Error("plain error should not unwrap to *Error")
	}
}
