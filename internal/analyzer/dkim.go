package analyzer

import (
	"context"
	"strings"
	"sync"

	"domainvetter/internal/dnsx"
	"domainvetter/internal/models"
)

// AnalyzeDKIM probes all configured selectors concurrently and aggregates
// the per-selector scores. Total latency is bounded by the slowest single
// probe, not the sum; the resolver's in-flight cap keeps the fan-out from
// overwhelming a shared DNS server.
func (a *Analyzer) AnalyzeDKIM(ctx context.Context, domain string) models.DKIMResult {
	result := models.DKIMResult{
		Selectors: map[string]models.DKIMSelectorResult{},
		Issues:    []string{},
	}

	probes := make([]models.DKIMSelectorResult, len(a.selectors))

	var wg sync.WaitGroup
	for i, selector := range a.selectors {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := selector + "._domainkey." + domain
			probes[i] = a.probeSelector(ctx, name, selector)
		}()
	}
	wg.Wait()

	total := 0
	for _, probe := range probes {
		if probe.Record == "" {
			continue
		}
		result.Selectors[probe.Selector] = probe
		total += probe.Score
	}

	switch len(result.Selectors) {
	case 0:
		result.Status = models.StatusMissing
		result.Issues = append(result.Issues, "No DKIM records found - emails may be marked as spam")
	case 1:
		result.Status = models.StatusBasic
		result.Score = min(total, 15)
		result.Issues = append(result.Issues, "Consider adding multiple DKIM selectors for redundancy")
	default:
		result.Status = models.StatusGood
		result.Score = min(total, 25)
	}

	return explainDKIM(result)
}

// probeSelector fetches and scores one selector's key record. DKIM keys are
// frequently split across multiple TXT strings, so all fragments are joined
// before parsing.
func (a *Analyzer) probeSelector(ctx context.Context, name, selector string) models.DKIMSelectorResult {
	probe := models.DKIMSelectorResult{
		Selector:   selector,
		KeyDetails: map[string]string{},
		Issues:     []string{},
	}

	res := a.resolver.Lookup(ctx, name, dnsx.TypeTXT)
	if !res.Found {
		probe.Status = models.StatusMissing
		return probe
	}

	var b strings.Builder
	for _, record := range res.Records {
		b.WriteString(strings.Trim(record, `"`))
	}
	probe.Record = b.String()
	probe.KeyDetails = parseTagValue(probe.Record)

	score := 10 // having a DKIM record at all

	if probe.KeyDetails["k"] == "rsa" {
		key := strings.ReplaceAll(probe.KeyDetails["p"], " ", "")
		if key == "" {
			probe.Issues = append(probe.Issues, "Empty or missing public key in DKIM record")
			score = 0
		} else {
			// Rough key length from the base64 payload, rounded down to a
			// byte boundary. Not real ASN.1 parsing, but close enough to
			// tell 1024 from 2048.
			bits := len(key) * 6 / 8 * 8
			switch {
			case bits >= 2048:
				score += 5
			case bits >= 1024:
				probe.Issues = append(probe.Issues, "Consider upgrading to 2048-bit RSA key")
			default:
				probe.Issues = append(probe.Issues, "RSA key appears to be less than 1024 bits - upgrade recommended")
				score = max(score-2, 0)
			}
		}
	}

	if probe.KeyDetails["t"] == "y" {
		probe.Issues = append(probe.Issues, "DKIM record is in test mode")
		score = max(score-3, 0)
	}

	probe.Score = score
	if len(probe.Issues) == 0 {
		probe.Status = models.StatusValid
	} else {
		probe.Status = models.StatusWarning
	}

	return probe
}
