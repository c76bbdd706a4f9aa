// Package store persists domain check results in PostgreSQL. Component
// results are stored as JSONB so historical checks survive schema changes
// in the analysis output.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"domainvetter/internal/models"
)

// ErrNotFound is returned when a check id does not exist.
var ErrNotFound = errors.New("check not found")

// Store wraps a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Open connects to Postgres, verifies the connection and runs migrations.
func Open(ctx context.Context, connString string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

// migrate creates the necessary tables if they don't exist.
func (s *Store) migrate(ctx context.Context) error {
	queryChecks := `
	CREATE TABLE IF NOT EXISTS domain_checks (
		id UUID PRIMARY KEY,
		domain TEXT NOT NULL,
		email TEXT,
		mx_record JSONB,
		spf_record JSONB,
		dkim_record JSONB,
		dmarc_record JSONB,
		score INT NOT NULL,
		grade VARCHAR(5) NOT NULL,
		issues JSONB,
		recommendations JSONB,
		security_summary JSONB,
		opt_in_marketing BOOLEAN DEFAULT FALSE,
		created_at TIMESTAMPTZ DEFAULT NOW()
	);`

	queryIndex := `
	CREATE INDEX IF NOT EXISTS idx_domain_checks_domain_created
		ON domain_checks (domain, created_at DESC);`

	if _, err := s.pool.Exec(ctx, queryChecks); err != nil {
		return fmt.Errorf("migration failed (domain_checks): %w", err)
	}
	if _, err := s.pool.Exec(ctx, queryIndex); err != nil {
		return fmt.Errorf("migration failed (index): %w", err)
	}
	return nil
}

// SaveCheck writes one completed analysis. The record's ID and CreatedAt
// must already be set by the caller.
func (s *Store) SaveCheck(ctx context.Context, rec *models.CheckRecord) error {
	a := rec.Analysis

	mx, err := json.Marshal(a.MX)
	if err != nil {
		return fmt.Errorf("encode mx: %w", err)
	}
	spf, err := json.Marshal(a.SPF)
	if err != nil {
		return fmt.Errorf("encode spf: %w", err)
	}
	dkim, err := json.Marshal(a.DKIM)
	if err != nil {
		return fmt.Errorf("encode dkim: %w", err)
	}
	dmarc, err := json.Marshal(a.DMARC)
	if err != nil {
		return fmt.Errorf("encode dmarc: %w", err)
	}
	issues, err := json.Marshal(a.Issues)
	if err != nil {
		return fmt.Errorf("encode issues: %w", err)
	}
	recs, err := json.Marshal(a.Recommendations)
	if err != nil {
		return fmt.Errorf("encode recommendations: %w", err)
	}
	summary, err := json.Marshal(a.SecuritySummary)
	if err != nil {
		return fmt.Errorf("encode security summary: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO domain_checks (
			id, domain, email,
			mx_record, spf_record, dkim_record, dmarc_record,
			score, grade, issues, recommendations, security_summary,
			opt_in_marketing, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		rec.ID, rec.Domain, rec.Email,
		mx, spf, dkim, dmarc,
		a.TotalScore, a.Grade, issues, recs, summary,
		rec.OptInMarketing, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert check: %w", err)
	}
	return nil
}

const checkColumns = `
	id, domain, email,
	mx_record, spf_record, dkim_record, dmarc_record,
	score, grade, issues, recommendations, security_summary,
	opt_in_marketing, created_at`

// GetCheck loads one check by id.
func (s *Store) GetCheck(ctx context.Context, id string) (*models.CheckRecord, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+checkColumns+` FROM domain_checks WHERE id = $1`, id)

	rec, err := scanCheck(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load check %s: %w", id, err)
	}
	return rec, nil
}

// History returns one page of checks for a domain, newest first, plus the
// total number of checks recorded for it.
func (s *Store) History(ctx context.Context, domain string, page, perPage int) ([]models.CheckRecord, int, error) {
	var total int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM domain_checks WHERE domain = $1`, domain).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count history: %w", err)
	}

	offset := (page - 1) * perPage
	rows, err := s.pool.Query(ctx, `
		SELECT `+checkColumns+`
		FROM domain_checks
		WHERE domain = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, domain, perPage, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	checks, err := collectChecks(rows)
	if err != nil {
		return nil, 0, err
	}
	return checks, total, nil
}

// Stats aggregates check counts, average score, grade distribution and the
// five most recent checks.
func (s *Store) Stats(ctx context.Context) (*models.Stats, error) {
	stats := &models.Stats{ChecksByGrade: map[string]int{}}

	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*), AVG(score) FROM domain_checks`).
		Scan(&stats.TotalChecks, &stats.AverageScore)
	if err != nil {
		return nil, fmt.Errorf("aggregate stats: %w", err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT grade, COUNT(*) FROM domain_checks GROUP BY grade`)
	if err != nil {
		return nil, fmt.Errorf("grade counts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var grade string
		var count int
		if err := rows.Scan(&grade, &count); err != nil {
			return nil, fmt.Errorf("scan grade count: %w", err)
		}
		stats.ChecksByGrade[grade] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("grade counts: %w", err)
	}

	recent, err := s.pool.Query(ctx, `
		SELECT `+checkColumns+`
		FROM domain_checks
		ORDER BY created_at DESC
		LIMIT 5`)
	if err != nil {
		return nil, fmt.Errorf("recent checks: %w", err)
	}
	defer recent.Close()

	stats.RecentChecks, err = collectChecks(recent)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// CountByEmail reports how many checks a recipient email has on record.
// A count of 1 right after saving means this is their first check.
func (s *Store) CountByEmail(ctx context.Context, email string) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM domain_checks WHERE email = $1`, email).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count by email: %w", err)
	}
	return count, nil
}

func collectChecks(rows pgx.Rows) ([]models.CheckRecord, error) {
	checks := []models.CheckRecord{}
	for rows.Next() {
		rec, err := scanCheck(rows)
		if err != nil {
			return nil, fmt.Errorf("scan check: %w", err)
		}
		checks = append(checks, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate checks: %w", err)
	}
	return checks, nil
}

func scanCheck(row pgx.Row) (*models.CheckRecord, error) {
	var (
		rec                   models.CheckRecord
		analysis              models.DomainAnalysis
		mx, spf, dkim, dmarc  []byte
		issues, recs, summary []byte
	)

	err := row.Scan(
		&rec.ID, &rec.Domain, &rec.Email,
		&mx, &spf, &dkim, &dmarc,
		&analysis.TotalScore, &analysis.Grade, &issues, &recs, &summary,
		&rec.OptInMarketing, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	for _, field := range []struct {
		data []byte
		dst  any
	}{
		{mx, &analysis.MX},
		{spf, &analysis.SPF},
		{dkim, &analysis.DKIM},
		{dmarc, &analysis.DMARC},
		{issues, &analysis.Issues},
		{recs, &analysis.Recommendations},
		{summary, &analysis.SecuritySummary},
	} {
		if len(field.data) == 0 {
			continue
		}
		if err := json.Unmarshal(field.data, field.dst); err != nil {
			return nil, fmt.Errorf("decode stored analysis: %w", err)
		}
	}

	analysis.Domain = rec.Domain
	rec.Analysis = analysis
	return &rec, nil
}
