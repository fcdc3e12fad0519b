package dto

import (
	"time"

	"github.com/contractlens/contractlens/internal/domain/user"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       *string   `json:"name,omitempty"`
	AvatarURL  *string   `json:"avatarUrl,omitempty"`
	Plan       string    `json:"plan"`
	AuditCount int       `json:"auditCount"`
	JoinedAt   time.Time `json:"joinedAt"`
}

// NewUserDTO maps a domain user to its API shape
func NewUserDTO(u *user.User) *UserDTO {
	return &UserDTO{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		AvatarURL:  u.AvatarURL,
		Plan:       u.Plan,
		AuditCount: u.AuditCount,
		JoinedAt:   u.JoinedAt,
	}
}

// UpdateProfileRequest carries a partial profile change. Omitted fields are
// left unchanged.
type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

// UpgradePlanRequest represents a plan change request
type UpgradePlanRequest struct {
	Plan string `json:"plan" validate:"required,oneof=starter pro business"`
}
