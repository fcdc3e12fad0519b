package audit

import "time"

// StarterAuditLimit is the number of audits a starter-plan account may
// record before an upgrade is required. Pro and business are unlimited.
const StarterAuditLimit = 3

// DefaultTitle is used when a record is submitted with a blank title
const DefaultTitle = "Untitled Contract"

// Red flag categories
const (
	CategoryPaymentTerms         = "Payment Terms"
	CategoryTerminationClauses   = "Termination Clauses"
	CategoryConfidentiality      = "Confidentiality"
	CategoryIntellectualProperty = "Intellectual Property"
	CategoryLiability            = "Liability"
	CategoryGoverningLaw         = "Governing Law"
	CategoryOther                = "Other"
)

// Red flag severities
const (
	SeverityHigh   = "High"
	SeverityMedium = "Medium"
	SeverityLow    = "Low"
)

// Verdicts the analysis provider is instructed to use
const (
	VerdictSafe    = "Safe"
	VerdictCaution = "Caution"
	VerdictDanger  = "Danger"
)

// KnownCategory reports whether c is one of the closed category set
func KnownCategory(c string) bool {
	switch c {
	case CategoryPaymentTerms, CategoryTerminationClauses, CategoryConfidentiality,
		CategoryIntellectualProperty, CategoryLiability, CategoryGoverningLaw, CategoryOther:
		return true
	}
	return false
}

// KnownSeverity reports whether s is one of the closed severity set
func KnownSeverity(s string) bool {
	switch s {
	case SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

// RedFlag is one identified contractual risk. It has no identity beyond its
// position within the parent result.
type RedFlag struct {
	Risk        string `json:"risk"`
	Category    string `json:"category"`
	Severity    string `json:"severity"`
	Explanation string `json:"explanation"`
	Alternative string `json:"alternative"`
}

// AnalysisResult is the normalized output of one contract analysis
type AnalysisResult struct {
	HealthScore      int       `json:"healthScore"`
	Verdict          string    `json:"verdict"`
	Summary          string    `json:"summary"`
	RedFlags         []RedFlag `json:"redFlags"`
	NegotiationEmail string    `json:"negotiationEmail"`
}

// Record is one persisted audit, owned by a user
type Record struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	ContractTitle string    `json:"contractTitle"`
	CreatedAt     time.Time `json:"timestamp"`
	AnalysisResult
}

// Request carries everything the analyzer needs for one audit
type Request struct {
	// Text is the contract body. The caller trims and validates it before
	// invoking the analyzer.
	Text string
	// Plan selects the model tier and prompt depth
	Plan string
	// FocusAreas is a free-text directive honored for business-plan audits
	FocusAreas string
}
