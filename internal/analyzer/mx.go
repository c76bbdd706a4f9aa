package analyzer

import (
	"context"
	"strconv"
	"strings"

	"domainvetter/internal/dnsx"
	"domainvetter/internal/models"
)

// AnalyzeMX checks the domain's MX records. A malformed entry is reported
// as an issue without aborting the remaining entries; an exchange of "."
// is the null MX convention and wins over any valid entries alongside it.
func (a *Analyzer) AnalyzeMX(ctx context.Context, domain string) models.MXResult {
	result := models.MXResult{
		Records: []models.MXHost{},
		Issues:  []string{},
	}

	res := a.resolver.Lookup(ctx, domain, dnsx.TypeMX)
	if !res.Found {
		result.Status = models.StatusMissing
		result.Issues = append(result.Issues, "No MX records found - email delivery will fail")
		return explainMX(result)
	}

	nullMX := false
	for _, record := range res.Records {
		pref, exchange, ok := strings.Cut(record, " ")
		if !ok {
			result.Issues = append(result.Issues, "Invalid MX record format: "+record)
			continue
		}
		preference, err := strconv.Atoi(pref)
		if err != nil {
			result.Issues = append(result.Issues, "Invalid MX record preference: "+record)
			continue
		}
		if exchange == "." {
			nullMX = true
		}
		result.Records = append(result.Records, models.MXHost{
			Preference: preference,
			Exchange:   strings.TrimSuffix(exchange, "."),
		})
	}

	switch {
	case nullMX:
		result.Status = models.StatusNullMX
		result.Issues = append(result.Issues, "Null MX record found - domain explicitly rejects email")
	case len(result.Records) > 0:
		result.Status = models.StatusValid
		result.Score = 20
	default:
		result.Status = models.StatusInvalid
		result.Issues = append(result.Issues, "No valid MX records found")
	}

	return explainMX(result)
}
