package dto

import "github.com/contractlens/contractlens/internal/domain/audit"

// AnalyzeRequest represents a contract analysis request
type AnalyzeRequest struct {
	ContractText  string `json:"contractText" validate:"required,min=1"`
	ContractTitle string `json:"contractTitle,omitempty" validate:"omitempty,max=200"`
	// FocusAreas is honored for business-plan accounts only
	FocusAreas string `json:"focusAreas,omitempty" validate:"omitempty,max=500"`
}

// AnalyzeResponse carries the recorded audit together with the caller's
// remaining quota
type AnalyzeResponse struct {
	Audit *audit.Record `json:"audit"`
	Quota *audit.Quota  `json:"quota"`
}

// RecordAuditRequest persists an analysis result produced elsewhere, such as
// a client-side retry of a previously returned result
type RecordAuditRequest struct {
	ContractTitle string                `json:"contractTitle,omitempty" validate:"omitempty,max=200"`
	Result        *audit.AnalysisResult `json:"result" validate:"required"`
}

// AuditListResponse wraps the audit history with the caller's quota
type AuditListResponse struct {
	Audits []*audit.Record `json:"audits"`
	Quota  *audit.Quota    `json:"quota"`
}
