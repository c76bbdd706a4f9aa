package main

import (
	"log/slog"
	"net/http"
	"strconv"

	"domainvetter/internal/models"
	"domainvetter/internal/validate"
)

type historyResponse struct {
	Checks     []models.CheckRecord `json:"checks"`
	TotalCount int                  `json:"total_count"`
	Page       int                  `json:"page"`
	PerPage    int                  `json:"per_page"`
	HasNext    bool                 `json:"has_next"`
	HasPrev    bool                 `json:"has_prev"`
}

// historyHandler pages through a domain's past checks, newest first.
func (s *apiServer) historyHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	domain := validate.Normalize(r.URL.Query().Get("domain"))
	if !validate.Domain(domain) {
		writeError(w, http.StatusUnprocessableEntity, "Invalid or unsafe domain format")
		return
	}

	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", 10)
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}

	checks, total, err := s.store.History(r.Context(), domain, page, perPage)
	if err != nil {
		slog.Error("history query failed", "domain", domain, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, historyResponse{
		Checks:     checks,
		TotalCount: total,
		Page:       page,
		PerPage:    perPage,
		HasNext:    page*perPage < total,
		HasPrev:    page > 1,
	})
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
