package analyzer

import (
	"context"
	"strings"

	"domainvetter/internal/dnsx"
	"domainvetter/internal/models"
)

// mechanismPrefixes are the qualifier mechanisms an SPF record may list.
var mechanismPrefixes = []string{"ip4:", "ip6:", "a:", "mx:", "include:", "exists:", "ptr:"}

// lookupPrefixes are the mechanisms that cost a DNS lookup at evaluation
// time. SPF allows 10 in total including nested includes; counting the
// top-level ones against a limit of 8 approximates that budget.
var lookupPrefixes = []string{"include:", "a:", "mx:", "exists:", "ptr:"}

// AnalyzeSPF finds and scores the domain's SPF policy. Only the first TXT
// record starting with v=spf1 is considered authoritative.
func (a *Analyzer) AnalyzeSPF(ctx context.Context, domain string) models.SPFResult {
	result := models.SPFResult{
		Mechanisms: []string{},
		Issues:     []string{},
	}

	res := a.resolver.Lookup(ctx, domain, dnsx.TypeTXT)
	record := firstWithPrefix(res.Records, "v=spf1")
	if record == "" {
		result.Status = models.StatusMissing
		result.Issues = append(result.Issues, "No SPF record found - increases spam risk")
		return explainSPF(result)
	}

	result.Record = record
	score := 5 // having any SPF record at all

	parts := strings.Fields(record)
	for _, part := range parts[1:] {
		switch {
		case hasAnyPrefix(part, mechanismPrefixes):
			result.Mechanisms = append(result.Mechanisms, part)
		case part == "-all" || part == "~all" || part == "?all" || part == "+all":
			result.Mechanisms = append(result.Mechanisms, part)
			switch part {
			case "-all":
				score += 20
			case "~all":
				score += 15
			case "?all":
				score += 5
				result.Issues = append(result.Issues, "Consider using '-all' for stricter SPF policy")
			case "+all":
				score = max(score-10, 0)
				result.Issues = append(result.Issues, "'+all' allows any server to send email - very insecure")
			}
		default:
			result.Issues = append(result.Issues, "Unknown SPF mechanism: "+part)
		}
	}

	hasAll := false
	for _, part := range parts {
		if strings.HasSuffix(part, "all") {
			hasAll = true
			break
		}
	}
	if !hasAll {
		result.Issues = append(result.Issues, "SPF record missing 'all' mechanism")
		score = max(score-5, 0)
	}

	lookups := 0
	for _, m := range result.Mechanisms {
		if hasAnyPrefix(m, lookupPrefixes) {
			lookups++
		}
	}
	if lookups > 8 {
		result.Issues = append(result.Issues, "SPF record may exceed DNS lookup limit (10)")
	}

	result.Score = min(score, 25)
	if len(result.Issues) == 0 {
		result.Status = models.StatusValid
	} else {
		result.Status = models.StatusWarning
	}

	return explainSPF(result)
}

// firstWithPrefix returns the first record that, after stripping surrounding
// quotes, starts with prefix.
func firstWithPrefix(records []string, prefix string) string {
	for _, record := range records {
		clean := strings.Trim(record, `"`)
		if strings.HasPrefix(clean, prefix) {
			return clean
		}
	}
	return ""
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
