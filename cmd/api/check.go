package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"domainvetter/internal/models"
	"domainvetter/internal/validate"
)

type checkRequest struct {
	Domain         string `json:"domain"`
	Email          string `json:"email"`
	OptInMarketing bool   `json:"opt_in_marketing"`
}

// checkHandler runs the full analysis pipeline for one domain: validate,
// rate-limit, analyze (or serve from cache), persist, and queue the email
// report.
func (s *apiServer) checkHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request body")
		return
	}

	domain := validate.Normalize(req.Domain)
	if !validate.Domain(domain) {
		writeError(w, http.StatusUnprocessableEntity, "Invalid or unsafe domain format")
		return
	}

	ctx := r.Context()
	slog.Info("domain check requested", "domain", domain, "email", req.Email)

	used, err := s.limiter.Usage(ctx, domain)
	if err != nil {
		slog.Error("usage lookup failed", "domain", domain, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if used >= s.limiter.Limit() {
		writeError(w, http.StatusTooManyRequests, fmt.Sprintf(
			"Domain check limit exceeded. Maximum %d checks per domain per month.",
			s.limiter.Limit()))
		return
	}

	analysis, cached := s.cache.Get(domain)
	if !cached {
		analysis = s.analyzer.Analyze(ctx, domain)
		s.cache.Set(domain, analysis)
	}

	rec := &models.CheckRecord{
		ID:             uuid.NewString(),
		Domain:         domain,
		Email:          req.Email,
		Analysis:       *analysis,
		OptInMarketing: req.OptInMarketing,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.store.SaveCheck(ctx, rec); err != nil {
		slog.Error("save check failed", "domain", domain, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if _, err := s.limiter.Record(ctx, domain); err != nil {
		// The check already succeeded; an uncounted check is the lesser harm.
		slog.Error("record usage failed", "domain", domain, "error", err)
	}

	if req.Email != "" {
		s.queueReport(ctx, rec)
	}

	slog.Info("domain check completed",
		"domain", domain, "score", analysis.TotalScore, "grade", analysis.Grade,
		"cached", cached)
	writeJSON(w, http.StatusOK, rec)
}

// queueReport enqueues the report email, with a welcome email for the
// recipient's first ever check.
func (s *apiServer) queueReport(ctx context.Context, rec *models.CheckRecord) {
	welcome := false
	count, err := s.store.CountByEmail(ctx, rec.Email)
	if err != nil {
		slog.Error("count by email failed", "email", rec.Email, "error", err)
	} else {
		welcome = count == 1
	}

	task := models.ReportTask{
		ID:      uuid.NewString(),
		CheckID: rec.ID,
		Domain:  rec.Domain,
		Email:   rec.Email,
		Welcome: welcome,
	}
	if err := s.reports.PublishReport(ctx, task); err != nil {
		slog.Error("enqueue report failed", "check_id", rec.ID, "error", err)
	}
}
