package user

import "context"

// ProfileUpdate carries a partial profile change. Nil fields are left
// unchanged on the stored record.
type ProfileUpdate struct {
	Name  *string
	Email *string
}

// Service defines the interface for account business logic
type Service interface {
	// Signup creates a starter-plan account with a hashed credential
	Signup(ctx context.Context, email, password, name string) (*User, error)

	// Login authenticates an email/password pair
	Login(ctx context.Context, email, password string) (*User, error)

	// FederatedLogin upserts an account from a federated identity
	// provider. It never fails because the email is already registered.
	FederatedLogin(ctx context.Context, email, name, avatarURL string) (*User, error)

	// ResetPassword verifies the account exists. Token issuance is out of
	// scope; no state changes.
	ResetPassword(ctx context.Context, email string) error

	// UpdateProfile merges the provided fields into the account
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*User, error)

	// UpgradePlan sets the account's plan tier
	UpgradePlan(ctx context.Context, userID, plan string) (*User, error)

	// DeleteAccount removes the account and its audit history atomically
	DeleteAccount(ctx context.Context, userID string) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*User, error)
}
