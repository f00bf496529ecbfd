package httpx

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes v as a JSON response with the given status code and
// no-store cache headers, which is what every auth-adjacent response wants.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// ErrorBody is the structured error payload for API-style routes. Never a
// stack trace.
type ErrorBody struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// WriteError writes a structured error body.
func WriteError(w http.ResponseWriter, code int, message string) {
	WriteJSON(w, code, ErrorBody{Status: code, Message: message})
}

// NoCache prevents caching of sensitive responses such as token exchanges.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
