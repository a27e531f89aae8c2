package handler

import (
	"net/http"
	"time"
)

// HandleHealth responds with a 200 OK and a JSON body indicating the server
// is healthy.
// GET /api/health
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
