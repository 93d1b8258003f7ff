// Package httpx provides JSON response utilities and the error envelope
// shared by all API handlers.
package httpx

import (
	"encoding/json"
	"net/http"
	"time"
)

// ErrorResponse is the envelope returned for every failed request.
type ErrorResponse struct {
	Status           int               `json:"status"`
	Error            string            `json:"error"`
	Message          string            `json:"message"`
	Path             string            `json:"path"`
	Timestamp        string            `json:"timestamp"`
	ValidationErrors map[string]string `json:"validationErrors,omitempty"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// NoContent sends an empty 204 response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error sends the error envelope with a category label and message.
func Error(w http.ResponseWriter, r *http.Request, status int, label, message string) {
	JSON(w, status, ErrorResponse{
		Status:    status,
		Error:     label,
		Message:   message,
		Path:      r.URL.Path,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// ValidationFailed sends a 400 carrying per-field messages.
func ValidationFailed(w http.ResponseWriter, r *http.Request, fields map[string]string) {
	JSON(w, http.StatusBadRequest, ErrorResponse{
		Status:           http.StatusBadRequest,
		Error:            "Validation failed",
		Message:          "Input validation error occurred",
		Path:             r.URL.Path,
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
		ValidationErrors: fields,
	})
}

// DecodeJSON decodes the request body into target.
func DecodeJSON(r *http.Request, target any) error {
	return json.NewDecoder(r.Body).Decode(target)
}
