package analyzer

import "domainvetter/internal/models"

// recordExplanation holds the plain-language texts for one record family.
type recordExplanation struct {
	whatIs   string
	statuses map[models.RecordStatus]string
	risks    map[models.RecordStatus]string
}

func (e recordExplanation) explain(status models.RecordStatus) models.Explanation {
	return models.Explanation{
		WhatIs:        e.whatIs,
		CurrentStatus: e.statuses[status],
		Risk:          e.risks[status],
	}
}

var mxExplanation = recordExplanation{
	whatIs: "MX (Mail Exchange) records tell other email servers where to deliver emails for your domain. Think of them as your domain's postal address for email.",
	statuses: map[models.RecordStatus]string{
		models.StatusValid:   "✅ Your domain is properly configured to receive emails. Email servers know where to deliver messages for your domain.",
		models.StatusMissing: "❌ Your domain cannot receive emails because no MX records are configured. Emails sent to your domain will bounce.",
		models.StatusNullMX:  "⚠️ Your domain is explicitly configured to reject all emails. This is intentional but prevents email delivery.",
		models.StatusInvalid: "❌ Your MX records are misconfigured. This may cause email delivery problems.",
	},
	risks: map[models.RecordStatus]string{
		models.StatusMissing: "People cannot send emails to addresses at your domain. Business communications will fail.",
		models.StatusNullMX:  "All emails to your domain will be rejected, which may not be intended.",
		models.StatusInvalid: "Emails may be delayed, bounce, or be lost entirely.",
	},
}

var spfExplanation = recordExplanation{
	whatIs: "SPF (Sender Policy Framework) is like a guest list for your domain. It tells receiving email servers which mail servers are allowed to send emails on behalf of your domain.",
	statuses: map[models.RecordStatus]string{
		models.StatusValid:   "✅ Your SPF record is properly configured and helps prevent others from spoofing emails from your domain.",
		models.StatusMissing: "❌ No SPF record found. Anyone can send emails claiming to be from your domain, making it easy for spammers to impersonate you.",
		models.StatusInvalid: "❌ Your SPF record has syntax errors that prevent it from working properly.",
		models.StatusWarning: "⚠️ Your SPF record works but could be improved for better security.",
	},
	risks: map[models.RecordStatus]string{
		models.StatusMissing: "Scammers can easily send fake emails that appear to come from your domain. Your legitimate emails may be marked as spam.",
		models.StatusInvalid: "Email authentication may fail, causing your legitimate emails to be rejected or marked as spam.",
		models.StatusWarning: "Some email servers may not trust emails from your domain as much as they should.",
	},
}

var dkimExplanation = recordExplanation{
	whatIs: "DKIM (DomainKeys Identified Mail) is like a digital signature on your emails. It proves that emails claiming to be from your domain actually came from you and weren't tampered with.",
	statuses: map[models.RecordStatus]string{
		models.StatusValid:   "✅ DKIM is properly configured. Your emails have digital signatures that prove their authenticity.",
		models.StatusGood:    "✅ DKIM is properly configured with multiple signing keys. Your emails have digital signatures that prove their authenticity.",
		models.StatusBasic:   "⚠️ DKIM is working but you could improve reliability by adding more signing keys.",
		models.StatusMissing: "❌ No DKIM signatures found. There's no way to verify that emails from your domain are authentic.",
		models.StatusInvalid: "❌ DKIM configuration has errors that prevent proper email signing.",
	},
	risks: map[models.RecordStatus]string{
		models.StatusMissing: "Emails from your domain cannot be verified as authentic. They may be marked as spam or rejected.",
		models.StatusBasic:   "If your single DKIM key fails, all your emails could be rejected until it's fixed.",
		models.StatusInvalid: "Email authentication will fail, causing deliverability problems.",
	},
}

var dmarcExplanation = recordExplanation{
	whatIs: "DMARC (Domain-based Message Authentication) is like a security policy that tells email servers what to do if an email claiming to be from your domain fails authentication checks.",
	statuses: map[models.RecordStatus]string{
		models.StatusValid:   "✅ DMARC is properly configured and actively protecting your domain from email spoofing.",
		models.StatusMissing: "❌ No DMARC policy found. Even with SPF and DKIM, there's no instruction on how to handle failed authentication.",
		models.StatusInvalid: "❌ DMARC policy has syntax errors that prevent it from working properly.",
		models.StatusWarning: "⚠️ DMARC is present but its settings leave room for spoofed emails to slip through.",
	},
	risks: map[models.RecordStatus]string{
		models.StatusMissing: "Email servers don't know what to do with emails that fail SPF/DKIM checks, reducing protection against spoofing.",
		models.StatusWarning: "Spoofed emails may still reach recipients until the policy is fully enforced.",
		models.StatusInvalid: "Email authentication policies may not be enforced properly.",
	},
}

func explainMX(r models.MXResult) models.MXResult {
	r.Explanation = mxExplanation.explain(r.Status)
	return r
}

func explainSPF(r models.SPFResult) models.SPFResult {
	r.Explanation = spfExplanation.explain(r.Status)
	return r
}

func explainDKIM(r models.DKIMResult) models.DKIMResult {
	r.Explanation = dkimExplanation.explain(r.Status)
	return r
}

func explainDMARC(r models.DMARCResult) models.DMARCResult {
	r.Explanation = dmarcExplanation.explain(r.Status)
	return r
}
