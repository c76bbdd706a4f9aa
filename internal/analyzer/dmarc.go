package analyzer

import (
	"context"
	"strconv"

	"domainvetter/internal/dnsx"
	"domainvetter/internal/models"
)

// AnalyzeDMARC checks the policy published at _dmarc.<domain>. The policy
// tag defaults to "none" and the coverage percentage to "100" when absent,
// matching how receivers interpret the record.
func (a *Analyzer) AnalyzeDMARC(ctx context.Context, domain string) models.DMARCResult {
	result := models.DMARCResult{
		Policy: map[string]string{},
		Issues: []string{},
	}

	res := a.resolver.Lookup(ctx, "_dmarc."+domain, dnsx.TypeTXT)
	record := firstWithPrefix(res.Records, "v=DMARC1")
	if record == "" {
		result.Status = models.StatusMissing
		result.Issues = append(result.Issues, "No DMARC record found - email authentication not enforced")
		return explainDMARC(result)
	}

	result.Record = record
	result.Policy = parseTagValue(record)
	score := 10 // having a DMARC record at all

	policy := result.Policy["p"]
	if policy == "" {
		policy = "none"
	}
	switch policy {
	case "reject":
		score += 20
	case "quarantine":
		score += 15
		result.Issues = append(result.Issues, "Consider upgrading to 'p=reject' for maximum protection")
	case "none":
		score += 5
		result.Issues = append(result.Issues, "DMARC policy is 'none' - not enforcing authentication")
	}

	pct := result.Policy["pct"]
	if pct == "" {
		pct = "100"
	}
	if pctValue, err := strconv.Atoi(pct); err != nil {
		result.Issues = append(result.Issues, "Invalid DMARC percentage value")
	} else if pctValue < 100 {
		result.Issues = append(result.Issues, "DMARC policy applies to only "+pct+"% of emails")
		score = max(score-5, 0)
	}

	if result.Policy["rua"] == "" && result.Policy["ruf"] == "" {
		result.Issues = append(result.Issues, "No DMARC reporting configured")
		score = max(score-3, 0)
	}

	result.Score = min(score, 30)
	if len(result.Issues) == 0 {
		result.Status = models.StatusValid
	} else {
		result.Status = models.StatusWarning
	}

	return explainDMARC(result)
}
