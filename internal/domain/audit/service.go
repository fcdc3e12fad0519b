package audit

import "context"

// Analyzer turns contract text into a normalized analysis result. Any
// transport, decode, or schema failure surfaces as a single analysis error
// with no partial result.
type Analyzer interface {
	Analyze(ctx context.Context, req Request) (*AnalysisResult, error)
}

// Quota describes how many more audits a user may record
type Quota struct {
	Unlimited bool `json:"unlimited"`
	Remaining int  `json:"remaining"`
	Limit     int  `json:"limit"`
}

// Service defines the interface for audit ledger business logic
type Service interface {
	// Record appends an audit for the user, enforcing the starter quota
	Record(ctx context.Context, userID, title string, result *AnalysisResult) (*Record, error)

	// List returns the user's audit history, most recent first
	List(ctx context.Context, userID string) ([]*Record, error)

	// Get retrieves one record, checking ownership
	Get(ctx context.Context, userID, auditID string) (*Record, error)

	// Delete removes one record, checking ownership
	Delete(ctx context.Context, userID, auditID string) error

	// RemainingQuota reports how many audits the user may still record
	RemainingQuota(ctx context.Context, userID string) (*Quota, error)
}
