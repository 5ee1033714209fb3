package handlers

import (
	"encoding/json"
	"net/http"
)

// Every response is a {success, message, ...} envelope; raw errors never
// cross the handler boundary.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondSuccess(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]any{
		"success": true,
		"message": message,
	})
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]any{
		"success": false,
		"message": message,
	})
}
