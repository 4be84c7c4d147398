package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/tmorel/finsight/backend/pkg/jsonutil"
)

// respondJSON writes a payload as JSON. NaN and infinite floats are
// sanitized to null/zero first so the body is always valid JSON.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(jsonutil.Sanitize(data))
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
