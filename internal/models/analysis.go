package models

// RecordStatus is the outcome classification of a single component check.
// The set of values each component can take differs (MX can be null_mx,
// DKIM can be basic/good), but the type is shared so the aggregator can
// reason over all four with the predicate methods below instead of
// comparing raw strings.
type RecordStatus string

const (
	StatusMissing RecordStatus = "missing"
	StatusValid   RecordStatus = "valid"
	StatusInvalid RecordStatus = "invalid"
	StatusWarning RecordStatus = "warning"
	StatusNullMX  RecordStatus = "null_mx"
	StatusBasic   RecordStatus = "basic"
	StatusGood    RecordStatus = "good"
)

// Configured reports whether the component exists in a usable form,
// even if imperfect.
func (s RecordStatus) Configured() bool {
	return s == StatusValid || s == StatusGood || s == StatusBasic
}

// Enforced reports whether the component is fully configured with no caveats.
func (s RecordStatus) Enforced() bool {
	return s == StatusValid
}

// Positive reports whether the component counts toward the "setup complete"
// threshold in the aggregate recommendations.
func (s RecordStatus) Positive() bool {
	return s == StatusValid || s == StatusGood
}

// Explanation is the plain-language narrative attached to each component.
type Explanation struct {
	WhatIs        string `json:"what_is"`
	CurrentStatus string `json:"current_status"`
	Risk          string `json:"risk_if_misconfigured"`
}

// MXHost is one parsed MX entry.
type MXHost struct {
	Preference int    `json:"preference"`
	Exchange   string `json:"exchange"`
}

// MXResult is the outcome of the MX record analysis.
type MXResult struct {
	Records     []MXHost     `json:"records"`
	Status      RecordStatus `json:"status"`
	Issues      []string     `json:"issues"`
	Score       int          `json:"score"`
	Explanation Explanation  `json:"explanation"`
}

// SPFResult is the outcome of the SPF record analysis.
type SPFResult struct {
	Record      string       `json:"record,omitempty"`
	Status      RecordStatus `json:"status"`
	Mechanisms  []string     `json:"mechanisms"`
	Issues      []string     `json:"issues"`
	Score       int          `json:"score"`
	Explanation Explanation  `json:"explanation"`
}

// DKIMSelectorResult is the per-selector outcome of a DKIM probe.
type DKIMSelectorResult struct {
	Record     string            `json:"record"`
	Selector   string            `json:"selector"`
	Status     RecordStatus      `json:"status"`
	KeyDetails map[string]string `json:"key_details"`
	Issues     []string          `json:"issues"`
	Score      int               `json:"score"`
}

// DKIMResult aggregates the selector probes for a domain.
type DKIMResult struct {
	Selectors   map[string]DKIMSelectorResult `json:"selectors"`
	Status      RecordStatus                  `json:"status"`
	Issues      []string                      `json:"issues"`
	Score       int                           `json:"score"`
	Explanation Explanation                   `json:"explanation"`
}

// DMARCResult is the outcome of the DMARC record analysis.
type DMARCResult struct {
	Record      string            `json:"record,omitempty"`
	Status      RecordStatus      `json:"status"`
	Policy      map[string]string `json:"policy"`
	Issues      []string          `json:"issues"`
	Score       int               `json:"score"`
	Explanation Explanation       `json:"explanation"`
}

// ProtectionStatus summarises what the current configuration actually
// protects against, in end-user terms.
type ProtectionStatus struct {
	SpoofingProtection string `json:"spoofing_protection"`
	EmailDelivery      string `json:"email_delivery"`
	Authentication     string `json:"authentication"`
}

// SecuritySummary is the narrative overview built from the four components.
type SecuritySummary struct {
	SecurityLevel        string           `json:"security_level"`
	OverallMessage       string           `json:"overall_message"`
	ComponentsConfigured string           `json:"components_configured"`
	GradeMeaning         string           `json:"grade_meaning"`
	PriorityActions      []string         `json:"priority_actions"`
	ProtectionStatus     ProtectionStatus `json:"protection_status"`
}

// DomainAnalysis is the complete result of one domain check. It is built
// fresh per request and never mutated afterwards.
type DomainAnalysis struct {
	Domain          string          `json:"domain"`
	MX              MXResult        `json:"mx"`
	SPF             SPFResult       `json:"spf"`
	DKIM            DKIMResult      `json:"dkim"`
	DMARC           DMARCResult     `json:"dmarc"`
	TotalScore      int             `json:"total_score"`
	Grade           string          `json:"grade"`
	Issues          []string        `json:"issues"`
	Recommendations []string        `json:"recommendations"`
	SecuritySummary SecuritySummary `json:"security_summary"`
}
