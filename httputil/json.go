// httputil/json.go
package httputil

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
//
// Invalid status codes (outside 100-599) are clamped to 500 Internal Server
// Error to prevent undefined behavior in net/http. An encoding failure after
// the header has been written cannot be reported to the client and is
// swallowed.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	if status < 100 || status > 599 {
		status = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(v)
}

// JSONError writes a structured JSON error with an error code and message.
func JSONError(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, ErrorResponse{
		Error:   code,
		Message: message,
	})
}
