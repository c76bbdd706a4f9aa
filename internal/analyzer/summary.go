package analyzer

import (
	"fmt"
	"slices"

	"domainvetter/internal/models"
)

// recommendations derives actionable advice from the four component results.
// Rules fire independently and in fixed MX, SPF, DKIM, DMARC order so the
// output is deterministic for a given analysis.
func recommendations(a *models.DomainAnalysis) []string {
	recs := []string{}

	switch a.MX.Status {
	case models.StatusMissing:
		recs = append(recs, "Configure MX records to enable email delivery for your domain")
	case models.StatusNullMX:
		recs = append(recs, "Remove null MX record if you want to receive emails")
	}

	if a.SPF.Status == models.StatusMissing {
		recs = append(recs, "Add SPF record to prevent email spoofing: 'v=spf1 -all' (adjust as needed)")
	} else if slices.Contains(a.SPF.Mechanisms, "?all") {
		recs = append(recs, "Strengthen SPF policy by changing '?all' to '-all' for better security")
	}

	switch a.DKIM.Status {
	case models.StatusMissing:
		recs = append(recs, "Set up DKIM signing to improve email authentication and deliverability")
	case models.StatusBasic:
		recs = append(recs, "Add multiple DKIM selectors for redundancy and better security")
	}

	if a.DMARC.Status == models.StatusMissing {
		recs = append(recs, "Implement DMARC policy to enforce email authentication: start with 'p=none' for monitoring")
	} else if a.DMARC.Policy["p"] == "none" {
		recs = append(recs, "Upgrade DMARC policy from 'none' to 'quarantine' or 'reject' for active protection")
	}

	positive := 0
	for _, status := range componentStatuses(a) {
		if status.Positive() {
			positive++
		}
	}
	if positive < 3 {
		recs = append(recs, "Complete email security setup with all four components: MX, SPF, DKIM, and DMARC")
	}

	return recs
}

// buildSummary condenses the analysis into the narrative overview served to
// end users and rendered into email reports.
func buildSummary(a *models.DomainAnalysis) models.SecuritySummary {
	var level, message string
	switch {
	case a.TotalScore >= 85:
		level = "Excellent"
		message = "Your domain has strong email security configured. You're well-protected against most email-based attacks."
	case a.TotalScore >= 70:
		level = "Good"
		message = "Your domain has decent email security, but there's room for improvement to better protect against spoofing and phishing."
	case a.TotalScore >= 50:
		level = "Fair"
		message = "Your domain has basic email security, but significant gaps leave you vulnerable to email spoofing and deliverability issues."
	default:
		level = "Poor"
		message = "Your domain has serious email security gaps. You're highly vulnerable to spoofing attacks and may experience email deliverability problems."
	}

	configured := 0
	for _, status := range componentStatuses(a) {
		if status.Configured() {
			configured++
		}
	}

	actions := []string{}
	if a.MX.Status == models.StatusMissing {
		actions = append(actions, "Set up MX records to enable email delivery")
	}
	if a.SPF.Status == models.StatusMissing {
		actions = append(actions, "Add SPF record to prevent email spoofing")
	}
	if a.DKIM.Status == models.StatusMissing {
		actions = append(actions, "Configure DKIM for email authentication")
	}
	if a.DMARC.Status == models.StatusMissing {
		actions = append(actions, "Implement DMARC policy for comprehensive protection")
	}
	if len(actions) > 3 {
		actions = actions[:3]
	}

	return models.SecuritySummary{
		SecurityLevel:        level,
		OverallMessage:       message,
		ComponentsConfigured: fmt.Sprintf("%d/4 email security components properly configured", configured),
		GradeMeaning:         GradeMeaning(a.Grade),
		PriorityActions:      actions,
		ProtectionStatus:     protectionStatus(a),
	}
}

func protectionStatus(a *models.DomainAnalysis) models.ProtectionStatus {
	status := models.ProtectionStatus{
		SpoofingProtection: "Vulnerable",
		EmailDelivery:      "Broken",
		Authentication:     "Weak",
	}

	if a.SPF.Status.Enforced() && a.DMARC.Status.Enforced() {
		status.SpoofingProtection = "Protected"
	}
	if a.MX.Status.Enforced() {
		status.EmailDelivery = "Working"
	}
	signing := a.DKIM.Status == models.StatusValid || a.DKIM.Status == models.StatusBasic
	if signing && a.SPF.Status.Enforced() {
		status.Authentication = "Strong"
	}

	return status
}

func componentStatuses(a *models.DomainAnalysis) [4]models.RecordStatus {
	return [4]models.RecordStatus{a.MX.Status, a.SPF.Status, a.DKIM.Status, a.DMARC.Status}
}
