package services

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/contractlens/contractlens/internal/domain/user"
	"github.com/contractlens/contractlens/internal/pkg/errors"
	"github.com/contractlens/contractlens/internal/pkg/logger"
	"github.com/contractlens/contractlens/internal/testutil"
)

func newAccountService() (user.Service, *testutil.MockUserRepository) {
	mockRepo := testutil.NewMockUserRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	return NewAccountService(mockRepo, bcrypt.MinCost, log), mockRepo
}

func TestAccountService_Signup(t *testing.T) {
	service, _ := newAccountService()
	ctx := context.Background()

	u, err := service.Signup(ctx, "Freelancer@Example.com", "longenough", "")
	if err != nil {
		t.Fatalf("Signup() error = %v", err)
	}
	if u.Email != "freelancer@example.com" {
		t.Errorf("Signup() email = %v, want normalized freelancer@example.com", u.Email)
	}
	if u.Plan != user.PlanStarter {
		t.Errorf("Signup() plan = %v, want %v", u.Plan, user.PlanStarter)
	}
	if u.AuditCount != 0 {
		t.Errorf("Signup() auditCount = %d, want 0", u.AuditCount)
	}
	if u.Name == nil || *u.Name != "freelancer" {
		t.Errorf("Signup() name = %v, want defaulted local part", u.Name)
	}
	if u.PasswordHash == "longenough" {
		t.Error("Signup() stored the password in plaintext")
	}
}

func TestAccountService_SignupErrors(t *testing.T) {
	service, _ := newAccountService()
	ctx := context.Background()

	if _, err := service.Signup(ctx, "taken@example.com", "longenough", "First"); err != nil {
		t.Fatalf("Signup() error = %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantCode string
	}{
		{
			name:     "duplicate email",
			email:    "taken@example.com",
			password: "longenough",
			wantCode: errors.ErrCodeDuplicateAccount,
		},
		{
			name:     "duplicate email different case",
			email:    "TAKEN@example.com",
			password: "longenough",
			wantCode: errors.ErrCodeDuplicateAccount,
		},
		{
			name:     "weak password",
			email:    "fresh@example.com",
			password: "short",
			wantCode: errors.ErrCodeWeakCredential,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Signup(ctx, tt.email, tt.password, "")
			if err == nil {
				t.Fatal("Signup() expected error, got nil")
			}
			if !errors.HasCode(err, tt.wantCode) {
				t.Errorf("Signup() error = %v, want code %v", err, tt.wantCode)
			}
		})
	}
}

func TestAccountService_SignupUniqueness(t *testing.T) {
	service, mockRepo := newAccountService()
	ctx := context.Background()

	emails := []string{"a@example.com", "b@example.com", "c@example.com"}
	for _, email := range emails {
		if _, err := service.Signup(ctx, email, "longenough", ""); err != nil {
			t.Fatalf("Signup(%s) error = %v", email, err)
		}
	}

	if len(mockRepo.Users) != len(emails) {
		t.Errorf("user count = %d, want %d", len(mockRepo.Users), len(emails))
	}
	for _, email := range emails {
		if _, ok := mockRepo.EmailIndex[email]; !ok {
			t.Errorf("missing user record for %s", email)
		}
	}
}

func TestAccountService_Login(t *testing.T) {
	service, _ := newAccountService()
	ctx := context.Background()

	if _, err := service.Signup(ctx, "user@example.com", "correct-horse", ""); err != nil {
		t.Fatalf("Signup() error = %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantCode string
	}{
		{
			name:     "successful login",
			email:    "user@example.com",
			password: "correct-horse",
		},
		{
			name:     "case-insensitive email",
			email:    "USER@example.com",
			password: "correct-horse",
		},
		{
			name:     "wrong password",
			email:    "user@example.com",
			password: "battery-staple",
			wantCode: errors.ErrCodeInvalidCredential,
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "correct-horse",
			wantCode: errors.ErrCodeAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := service.Login(ctx, tt.email, tt.password)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Login() error = %v", err)
				}
				if u.Email != "user@example.com" {
					t.Errorf("Login() email = %v", u.Email)
				}
				return
			}
			if !errors.HasCode(err, tt.wantCode) {
				t.Errorf("Login() error = %v, want code %v", err, tt.wantCode)
			}
		})
	}
}

func TestAccountService_LoginFederatedOnlyAccount(t *testing.T) {
	service, _ := newAccountService()
	ctx := context.Background()

	if _, err := service.FederatedLogin(ctx, "sso@example.com", "SSO User", ""); err != nil {
		t.Fatalf("FederatedLogin() error = %v", err)
	}

	_, err := service.Login(ctx, "sso@example.com", "whatever-pass")
	if !errors.HasCode(err, errors.ErrCodeInvalidCredential) {
		t.Errorf("Login() error = %v, want code %v", err, errors.ErrCodeInvalidCredential)
	}
}

func TestAccountService_FederatedLoginUpsert(t *testing.T) {
	service, mockRepo := newAccountService()
	ctx := context.Background()

	first, err := service.FederatedLogin(ctx, "Google.User@Example.com", "Google User 88", "https://avatars.test/88.png")
	if err != nil {
		t.Fatalf("FederatedLogin() error = %v", err)
	}
	if first.Plan != user.PlanStarter {
		t.Errorf("FederatedLogin() plan = %v, want %v", first.Plan, user.PlanStarter)
	}

	second, err := service.FederatedLogin(ctx, "google.user@example.com", "Renamed User", "")
	if err != nil {
		t.Fatalf("FederatedLogin() second call error = %v", err)
	}

	if len(mockRepo.Users) != 1 {
		t.Fatalf("user count = %d, want exactly 1 after repeat federated login", len(mockRepo.Users))
	}
	if second.ID != first.ID {
		t.Error("FederatedLogin() created a second account for the same email")
	}
	if second.Name == nil || *second.Name != "Renamed User" {
		t.Errorf("FederatedLogin() name = %v, want Renamed User", second.Name)
	}
	// Blank avatar from the provider must not wipe the stored one
	if second.AvatarURL == nil || *second.AvatarURL != "https://avatars.test/88.png" {
		t.Errorf("FederatedLogin() avatar = %v, want original preserved", second.AvatarURL)
	}
}

func TestAccountService_FederatedLoginBlankNameKept(t *testing.T) {
	service, _ := newAccountService()
	ctx := context.Background()

	if _, err := service.FederatedLogin(ctx, "keep@example.com", "Original Name", ""); err != nil {
		t.Fatalf("FederatedLogin() error = %v", err)
	}

	u, err := service.FederatedLogin(ctx, "keep@example.com", "  ", "")
	if err != nil {
		t.Fatalf("FederatedLogin() error = %v", err)
	}
	if u.Name == nil || *u.Name != "Original Name" {
		t.Errorf("FederatedLogin() name = %v, blank value overwrote the stored one", u.Name)
	}
}

func TestAccountService_ResetPassword(t *testing.T) {
	service, _ := newAccountService()
	ctx := context.Background()

	if _, err := service.Signup(ctx, "user@example.com", "longenough", ""); err != nil {
		t.Fatalf("Signup() error = %v", err)
	}

	if err := service.ResetPassword(ctx, "user@example.com"); err != nil {
		t.Errorf("ResetPassword() error = %v", err)
	}

	err := service.ResetPassword(ctx, "nobody@example.com")
	if !errors.HasCode(err, errors.ErrCodeAccountNotFound) {
		t.Errorf("ResetPassword() error = %v, want code %v", err, errors.ErrCodeAccountNotFound)
	}
}

func TestAccountService_UpdateProfile(t *testing.T) {
	service, _ := newAccountService()
	ctx := context.Background()

	created, err := service.Signup(ctx, "user@example.com", "longenough", "Original")
	if err != nil {
		t.Fatalf("Signup() error = %v", err)
	}

	newName := "Updated Name"
	updated, err := service.UpdateProfile(ctx, created.ID, user.ProfileUpdate{Name: &newName})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if updated.Name == nil || *updated.Name != newName {
		t.Errorf("UpdateProfile() name = %v, want %v", updated.Name, newName)
	}
	// Omitted email must be left unchanged
	if updated.Email != "user@example.com" {
		t.Errorf("UpdateProfile() email = %v, want unchanged", updated.Email)
	}

	newEmail := "Moved@Example.com"
	updated, err = service.UpdateProfile(ctx, created.ID, user.ProfileUpdate{Email: &newEmail})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if updated.Email != "moved@example.com" {
		t.Errorf("UpdateProfile() email = %v, want moved@example.com", updated.Email)
	}
}

func TestAccountService_UpdateProfileErrors(t *testing.T) {
	service, _ := newAccountService()
	ctx := context.Background()

	created, err := service.Signup(ctx, "user@example.com", "longenough", "")
	if err != nil {
		t.Fatalf("Signup() error = %v", err)
	}
	if _, err := service.Signup(ctx, "taken@example.com", "longenough", ""); err != nil {
		t.Fatalf("Signup() error = %v", err)
	}

	takenEmail := "taken@example.com"
	_, err = service.UpdateProfile(ctx, created.ID, user.ProfileUpdate{Email: &takenEmail})
	if !errors.HasCode(err, errors.ErrCodeDuplicateAccount) {
		t.Errorf("UpdateProfile() error = %v, want code %v", err, errors.ErrCodeDuplicateAccount)
	}

	name := "Ghost"
	_, err = service.UpdateProfile(ctx, "missing-id", user.ProfileUpdate{Name: &name})
	if !errors.HasCode(err, errors.ErrCodeUserNotFound) {
		t.Errorf("UpdateProfile() error = %v, want code %v", err, errors.ErrCodeUserNotFound)
	}
}

func TestAccountService_UpgradePlan(t *testing.T) {
	service, _ := newAccountService()
	ctx := context.Background()

	created, err := service.Signup(ctx, "user@example.com", "longenough", "")
	if err != nil {
		t.Fatalf("Signup() error = %v", err)
	}

	tests := []struct {
		name    string
		userID  string
		plan    string
		wantErr bool
	}{
		{
			name:   "upgrade to pro",
			userID: created.ID,
			plan:   user.PlanPro,
		},
		{
			name:   "upgrade to business",
			userID: created.ID,
			plan:   user.PlanBusiness,
		},
		{
			name:   "downgrade back to starter",
			userID: created.ID,
			plan:   user.PlanStarter,
		},
		{
			name:    "unknown plan",
			userID:  created.ID,
			plan:    "enterprise",
			wantErr: true,
		},
		{
			name:    "unknown user",
			userID:  "missing-id",
			plan:    user.PlanPro,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := service.UpgradePlan(ctx, tt.userID, tt.plan)
			if (err != nil) != tt.wantErr {
				t.Fatalf("UpgradePlan() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && u.Plan != tt.plan {
				t.Errorf("UpgradePlan() plan = %v, want %v", u.Plan, tt.plan)
			}
		})
	}
}

func TestAccountService_DeleteAccount(t *testing.T) {
	service, mockRepo := newAccountService()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	mockAudits := testutil.NewMockAuditRepository(mockRepo)
	auditService := NewAuditService(mockAudits, mockRepo, log)
	ctx := context.Background()

	created, err := service.Signup(ctx, "user@example.com", "longenough", "")
	if err != nil {
		t.Fatalf("Signup() error = %v", err)
	}
	if _, err := auditService.Record(ctx, created.ID, "NDA", sampleResult()); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	if err := service.DeleteAccount(ctx, created.ID); err != nil {
		t.Fatalf("DeleteAccount() error = %v", err)
	}

	if _, err := service.GetByID(ctx, created.ID); !errors.HasCode(err, errors.ErrCodeUserNotFound) {
		t.Errorf("GetByID() after delete error = %v, want code %v", err, errors.ErrCodeUserNotFound)
	}

	audits, err := auditService.List(ctx, created.ID)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(audits) != 0 {
		t.Errorf("List() after delete = %d records, want 0", len(audits))
	}
}
