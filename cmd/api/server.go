package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"domainvetter/internal/analyzer"
	"domainvetter/internal/cache"
	"domainvetter/internal/config"
	"domainvetter/internal/queue"
	"domainvetter/internal/ratelimit"
	"domainvetter/internal/store"
)

// apiServer bundles the handlers' dependencies. Everything is injected so
// main stays the only place that knows how to construct them.
type apiServer struct {
	cfg      *config.Config
	analyzer *analyzer.Analyzer
	cache    *cache.Store
	store    *store.Store
	limiter  *ratelimit.Limiter
	reports  *queue.Publisher
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
