// Package analyzer scores a domain's email-authentication posture from its
// MX, SPF, DKIM and DMARC records. Each component analyzer degrades every
// problem it encounters into issues and score adjustments, so an analysis
// always completes with a full result, even for a domain with no DNS
// records at all.
package analyzer

import (
	"context"
	"sync"

	"domainvetter/internal/dnsx"
	"domainvetter/internal/models"
)

// DefaultSelectors are the DKIM selectors probed when the caller does not
// supply its own list. They cover the providers that sign the bulk of
// legitimate mail.
var DefaultSelectors = []string{
	"default",
	"google",
	"amazonses",
	"mailchimp",
	"sendgrid",
	"mailgun",
	"constantcontact",
	"awsses",
	"postmark",
	"mandrill",
	"sparkpost",
	"sendinblue",
	"outlook",
	"office365",
}

// Analyzer runs the four component checks against a resolver.
type Analyzer struct {
	resolver  dnsx.Resolver
	selectors []string
}

// New builds an Analyzer. A nil or empty selector list falls back to
// DefaultSelectors.
func New(resolver dnsx.Resolver, selectors []string) *Analyzer {
	if len(selectors) == 0 {
		selectors = DefaultSelectors
	}
	return &Analyzer{resolver: resolver, selectors: selectors}
}

// Analyze runs all four component analyzers concurrently and combines their
// results into one DomainAnalysis. The caller is expected to have validated
// the domain already.
func (a *Analyzer) Analyze(ctx context.Context, domain string) *models.DomainAnalysis {
	out := &models.DomainAnalysis{Domain: domain}

	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		out.MX = a.AnalyzeMX(ctx, domain)
	}()
	go func() {
		defer wg.Done()
		out.SPF = a.AnalyzeSPF(ctx, domain)
	}()
	go func() {
		defer wg.Done()
		out.DKIM = a.AnalyzeDKIM(ctx, domain)
	}()
	go func() {
		defer wg.Done()
		out.DMARC = a.AnalyzeDMARC(ctx, domain)
	}()

	wg.Wait()

	out.TotalScore = out.MX.Score + out.SPF.Score + out.DKIM.Score + out.DMARC.Score
	out.Grade = Grade(out.TotalScore)

	out.Issues = make([]string, 0,
		len(out.MX.Issues)+len(out.SPF.Issues)+len(out.DKIM.Issues)+len(out.DMARC.Issues))
	out.Issues = append(out.Issues, out.MX.Issues...)
	out.Issues = append(out.Issues, out.SPF.Issues...)
	out.Issues = append(out.Issues, out.DKIM.Issues...)
	out.Issues = append(out.Issues, out.DMARC.Issues...)

	out.Recommendations = recommendations(out)
	out.SecuritySummary = buildSummary(out)

	return out
}
