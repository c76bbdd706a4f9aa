package main

import (
	"log/slog"
	"net/http"

	"domainvetter/internal/validate"
)

type usageResponse struct {
	Domain          string `json:"domain"`
	ChecksUsed      int    `json:"checks_used"`
	ChecksRemaining int    `json:"checks_remaining"`
}

// usageHandler reports the current month's check allowance for a domain
// without consuming any of it.
func (s *apiServer) usageHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	domain := validate.Normalize(r.URL.Query().Get("domain"))
	if !validate.Domain(domain) {
		writeError(w, http.StatusUnprocessableEntity, "Invalid or unsafe domain format")
		return
	}

	used, err := s.limiter.Usage(r.Context(), domain)
	if err != nil {
		slog.Error("usage lookup failed", "domain", domain, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, usageResponse{
		Domain:          domain,
		ChecksUsed:      used,
		ChecksRemaining: max(0, s.limiter.Limit()-used),
	})
}
