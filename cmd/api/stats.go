package main

import (
	"log/slog"
	"net/http"
)

// statsHandler serves the aggregate view over all recorded checks.
func (s *apiServer) statsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	stats, err := s.store.Stats(r.Context())
	if err != nil {
		slog.Error("stats query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
