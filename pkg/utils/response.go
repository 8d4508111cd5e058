package utils

import (
	"encoding/json"
	"log"
	"net/http"
)

// RespondJSON encodes payload as the JSON body of the response. Encoding
// failures are logged; headers have already gone out by then.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// RespondError sends a {"error": message} body with the given status.
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, map[string]string{"error": message})
}
