package middleware

import (
	"encoding/json"
	"net/http"
)

type envelope map[string]any

// errorResponse writes a JSON error body. Middleware runs before any page
// handler, so it cannot rely on the handler package helpers.
func errorResponse(w http.ResponseWriter, status int, message any) {
	js, err := json.Marshal(envelope{"error": message})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)
}
