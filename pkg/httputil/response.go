package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/ajanick3/readinglist/pkg/errs"
)

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteMessage writes a JSON body of the form {"message": ...}
func WriteMessage(w http.ResponseWriter, status int, message string) {
	_ = WriteJSON(w, status, map[string]string{"message": message})
}

// WriteAPIError converts an error into its HTTP response. Errors from the
// errs taxonomy keep their status, message, and optional code; anything else
// is an internal failure and surfaces as a bare 500.
func WriteAPIError(w http.ResponseWriter, err error) {
	if apiErr, ok := errs.As(err); ok {
		_ = WriteJSON(w, apiErr.Status, apiErr)
		return
	}
	WriteMessage(w, http.StatusInternalServerError, "internal server error")
}

// WriteSuccess writes a successful response (200 OK) with JSON data
func WriteSuccess(w http.ResponseWriter, data interface{}) error {
	return WriteJSON(w, http.StatusOK, data)
}

// WriteNoContent writes a successful response with no content (204 No Content)
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
