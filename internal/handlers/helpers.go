package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// writeJSON is a small helper to send JSON responses consistently.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// parsePage reads the page query parameter, defaulting to the first
// page on anything absent or malformed.
func parsePage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func forceRefresh(r *http.Request) bool {
	return r.URL.Query().Get("refresh") == "1"
}
