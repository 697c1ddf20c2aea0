package middleware

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes a JSON response with status code.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteError sends an error body of the shape {"error":{"code":...}}.
// Codes are stable machine-readable identifiers, never free-form messages.
func WriteError(w http.ResponseWriter, status int, code string) {
	WriteJSON(w, status, map[string]any{
		"error": map[string]string{"code": code},
	})
}
