package client

import "time"

// User represents an account
type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       *string   `json:"name,omitempty"`
	AvatarURL  *string   `json:"avatarUrl,omitempty"`
	Plan       string    `json:"plan"`
	AuditCount int       `json:"auditCount"`
	JoinedAt   time.Time `json:"joinedAt"`
}

// RedFlag is one identified contractual risk
type RedFlag struct {
	Risk        string `json:"risk"`
	Category    string `json:"category"`
	Severity    string `json:"severity"`
	Explanation string `json:"explanation"`
	Alternative string `json:"alternative"`
}

// AnalysisResult is the output of one contract analysis
type AnalysisResult struct {
	HealthScore      int       `json:"healthScore"`
	Verdict          string    `json:"verdict"`
	Summary          string    `json:"summary"`
	RedFlags         []RedFlag `json:"redFlags"`
	NegotiationEmail string    `json:"negotiationEmail"`
}

// Audit is one persisted audit record
type Audit struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	ContractTitle string    `json:"contractTitle"`
	Timestamp     time.Time `json:"timestamp"`
	AnalysisResult
}

// Quota describes how many more audits the caller may record
type Quota struct {
	Unlimited bool `json:"unlimited"`
	Remaining int  `json:"remaining"`
	Limit     int  `json:"limit"`
}

// AuthResponse is returned by the auth endpoints
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user"`
}

// AuditList bundles the audit history with the caller's quota
type AuditList struct {
	Audits []Audit `json:"audits"`
	Quota  *Quota  `json:"quota"`
}

// AnalyzeResult bundles the recorded audit with the caller's quota
type AnalyzeResult struct {
	Audit *Audit `json:"audit"`
	Quota *Quota `json:"quota"`
}

// Plan is one entry in the subscription catalog
type Plan struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency"`
	Interval    string   `json:"interval"`
	Features    []string `json:"features"`
	IsPopular   bool     `json:"isPopular"`
	IsCurrent   bool     `json:"isCurrent"`
}
