package user

import (
	"strings"
	"time"
)

// User represents an account in the system. PasswordHash is empty for
// accounts created through a federated provider.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         *string   `json:"name,omitempty"`
	AvatarURL    *string   `json:"avatar,omitempty"`
	PasswordHash string    `json:"-"` // Not exposed in JSON
	Plan         string    `json:"plan"`
	AuditCount   int       `json:"auditCount"`
	JoinedAt     time.Time `json:"joinedAt"`
	UpdatedAt    time.Time `json:"-"`
}

// Plan tiers
const (
	PlanStarter  = "starter"
	PlanPro      = "pro"
	PlanBusiness = "business"
)

// ValidPlan reports whether p is a known plan tier
func ValidPlan(p string) bool {
	switch p {
	case PlanStarter, PlanPro, PlanBusiness:
		return true
	}
	return false
}

// UnlimitedAudits reports whether the plan has no audit quota
func UnlimitedAudits(plan string) bool {
	return plan == PlanPro || plan == PlanBusiness
}

// NormalizeEmail lowercases and trims an email address. At most one account
// exists per normalized email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
