package models

import "time"

// CheckRecord is one persisted domain check, as stored in domain_checks.
type CheckRecord struct {
	ID             string         `json:"id"`
	Domain         string         `json:"domain"`
	Email          string         `json:"email,omitempty"`
	Analysis       DomainAnalysis `json:"analysis"`
	OptInMarketing bool           `json:"opt_in_marketing"`
	CreatedAt      time.Time      `json:"created_at"`
}

// ReportTask is the queue payload instructing the worker to email a report.
type ReportTask struct {
	ID      string `json:"id"`
	CheckID string `json:"check_id"`
	Domain  string `json:"domain"`
	Email   string `json:"email"`
	Welcome bool   `json:"welcome"`
}

// Stats is the aggregate view over all persisted checks.
type Stats struct {
	TotalChecks   int            `json:"total_checks"`
	AverageScore  *float64       `json:"average_score,omitempty"`
	ChecksByGrade map[string]int `json:"checks_by_grade"`
	RecentChecks  []CheckRecord  `json:"recent_checks"`
}
