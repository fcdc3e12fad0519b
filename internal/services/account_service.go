package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/contractlens/contractlens/internal/domain/user"
	"github.com/contractlens/contractlens/internal/pkg/errors"
	"github.com/contractlens/contractlens/internal/pkg/logger"
)

// MinPasswordLength is the floor for password-based credentials
const MinPasswordLength = 8

// AccountService implements user.Service
type AccountService struct {
	repo       user.Repository
	bcryptCost int
	logger     *logger.Logger
}

// NewAccountService creates a new account service
func NewAccountService(repo user.Repository, bcryptCost int, log *logger.Logger) user.Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AccountService{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     log,
	}
}

// Signup creates a starter-plan account with a hashed credential
func (s *AccountService) Signup(ctx context.Context, email, password, name string) (*user.User, error) {
	email = user.NormalizeEmail(email)

	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return nil, errors.DuplicateAccount()
	}
	if !errors.HasCode(err, errors.ErrCodeAccountNotFound) {
		return nil, err
	}

	if len(password) < MinPasswordLength {
		return nil, errors.WeakCredential(MinPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}

	if strings.TrimSpace(name) == "" {
		name = localPart(email)
	}

	u := &user.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         &name,
		PasswordHash: string(hash),
		Plan:         user.PlanStarter,
		AuditCount:   0,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create user")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": u.ID,
		"email":   u.Email,
	}).Info("Account created")

	return u, nil
}

// Login authenticates an email/password pair
func (s *AccountService) Login(ctx context.Context, email, password string) (*user.User, error) {
	u, err := s.repo.GetByEmail(ctx, user.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}

	// Accounts created through a federated provider have no password
	if u.PasswordHash == "" {
		return nil, errors.InvalidCredential()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, errors.InvalidCredential()
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": u.ID,
	}).Info("User logged in")

	return u, nil
}

// FederatedLogin upserts an account from a federated identity provider. A
// fresh account starts on the starter plan; an existing account only takes
// nonblank profile fields from the provider, so a provider that omits the
// avatar never wipes one already stored.
func (s *AccountService) FederatedLogin(ctx context.Context, email, name, avatarURL string) (*user.User, error) {
	email = user.NormalizeEmail(email)

	u, err := s.repo.GetByEmail(ctx, email)
	if errors.HasCode(err, errors.ErrCodeAccountNotFound) {
		if strings.TrimSpace(name) == "" {
			name = localPart(email)
		}
		u = &user.User{
			ID:         uuid.NewString(),
			Email:      email,
			Name:       &name,
			Plan:       user.PlanStarter,
			AuditCount: 0,
		}
		if strings.TrimSpace(avatarURL) != "" {
			u.AvatarURL = &avatarURL
		}
		if err := s.repo.Create(ctx, u); err != nil {
			s.logger.ErrorWithErr(err, "Failed to create federated user")
			return nil, err
		}

		s.logger.WithFields(map[string]interface{}{
			"user_id": u.ID,
			"email":   u.Email,
		}).Info("Federated account created")

		return u, nil
	}
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(name) != "" {
		u.Name = &name
	}
	if strings.TrimSpace(avatarURL) != "" {
		u.AvatarURL = &avatarURL
	}
	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.ErrorWithErr(err, "Failed to sync federated profile")
		return nil, err
	}

	return u, nil
}

// ResetPassword verifies the account exists. No token is issued here;
// delivery is a mail-pipeline concern outside this service.
func (s *AccountService) ResetPassword(ctx context.Context, email string) error {
	u, err := s.repo.GetByEmail(ctx, user.NormalizeEmail(email))
	if err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": u.ID,
	}).Info("Password reset requested")

	return nil
}

// UpdateProfile merges the provided fields into the account. Omitted fields
// are left unchanged; an email change is re-checked for uniqueness.
func (s *AccountService) UpdateProfile(ctx context.Context, userID string, update user.ProfileUpdate) (*user.User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Email != nil {
		email := user.NormalizeEmail(*update.Email)
		if email != u.Email {
			_, err := s.repo.GetByEmail(ctx, email)
			if err == nil {
				return nil, errors.DuplicateAccount()
			}
			if !errors.HasCode(err, errors.ErrCodeAccountNotFound) {
				return nil, err
			}
			u.Email = email
		}
	}
	if update.Name != nil {
		u.Name = update.Name
	}

	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update profile")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": u.ID,
	}).Info("Profile updated")

	return u, nil
}

// UpgradePlan sets the account's plan tier. Payment collection is handled
// by the billing surface before this is called.
func (s *AccountService) UpgradePlan(ctx context.Context, userID, plan string) (*user.User, error) {
	if !user.ValidPlan(plan) {
		return nil, errors.BadRequest("Unknown plan tier")
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	u.Plan = plan
	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.ErrorWithErr(err, "Failed to upgrade plan")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": userID,
		"plan":    plan,
	}).Info("Plan changed")

	return u, nil
}

// DeleteAccount removes the account and its audit history. The repository
// performs the cascade atomically, so a failure leaves everything in place.
func (s *AccountService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.repo.Delete(ctx, userID); err != nil {
		s.logger.ErrorWithErr(err, "Failed to delete account")
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": userID,
	}).Info("Account deleted")

	return nil
}

// GetByID retrieves a user by ID
func (s *AccountService) GetByID(ctx context.Context, id string) (*user.User, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByEmail retrieves a user by email
func (s *AccountService) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return s.repo.GetByEmail(ctx, user.NormalizeEmail(email))
}

func localPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
