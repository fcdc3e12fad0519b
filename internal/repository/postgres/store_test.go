package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/contractlens/contractlens/internal/config"
	"github.com/contractlens/contractlens/internal/domain/audit"
	"github.com/contractlens/contractlens/internal/domain/user"
	"github.com/contractlens/contractlens/internal/pkg/errors"
	"github.com/contractlens/contractlens/migrations"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := New(config.DatabaseConfig{
		Driver: "sqlite",
		Path:   t.TempDir() + "/test.db",
	})
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.Migrate(migrations.GetFS()); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return store
}

func newTestUser(plan string) *user.User {
	name := "Ada"
	return &user.User{
		ID:           uuid.New().String(),
		Email:        "ada@example.com",
		Name:         &name,
		PasswordHash: "$2a$10$notarealhash",
		Plan:         plan,
	}
}

func newTestRecord(userID, title string) *audit.Record {
	rec := &audit.Record{
		ID:            uuid.New().String(),
		UserID:        userID,
		ContractTitle: title,
	}
	rec.HealthScore = 55
	rec.Verdict = audit.VerdictCaution
	rec.Summary = "Mixed terms with one payment risk."
	rec.RedFlags = []audit.RedFlag{
		{
			Risk:        "Net-90 payment terms",
			Category:    audit.CategoryPaymentTerms,
			Severity:    audit.SeverityHigh,
			Explanation: "Ninety days is far beyond the industry norm.",
			Alternative: "Net-30 with late fees after 15 days.",
		},
	}
	rec.NegotiationEmail = "Hi, about the payment schedule..."
	return rec
}

func TestUserRepositoryCRUD(t *testing.T) {
	store := newTestStore(t)
	repo := NewUserRepository(store)
	ctx := context.Background()

	u := newTestUser(user.PlanStarter)
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Email != u.Email {
		t.Errorf("email = %q, want %q", got.Email, u.Email)
	}
	if got.Name == nil || *got.Name != "Ada" {
		t.Errorf("name = %v, want Ada", got.Name)
	}
	if got.AvatarURL != nil {
		t.Errorf("avatar = %v, want nil", got.AvatarURL)
	}
	if got.Plan != user.PlanStarter {
		t.Errorf("plan = %q, want starter", got.Plan)
	}
	if got.JoinedAt.IsZero() {
		t.Error("joinedAt not set")
	}

	byEmail, err := repo.GetByEmail(ctx, u.Email)
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if byEmail.ID != u.ID {
		t.Errorf("GetByEmail ID = %q, want %q", byEmail.ID, u.ID)
	}

	got.Plan = user.PlanPro
	newName := "Ada Lovelace"
	got.Name = &newName
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	updated, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID after update failed: %v", err)
	}
	if updated.Plan != user.PlanPro {
		t.Errorf("plan = %q, want pro", updated.Plan)
	}
	if updated.Name == nil || *updated.Name != "Ada Lovelace" {
		t.Errorf("name = %v, want Ada Lovelace", updated.Name)
	}

	if err := repo.Delete(ctx, u.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.GetByID(ctx, u.ID); !errors.HasCode(err, errors.ErrCodeUserNotFound) {
		t.Errorf("GetByID after delete = %v, want USER_NOT_FOUND", err)
	}
}

func TestUserRepositoryNotFound(t *testing.T) {
	store := newTestStore(t)
	repo := NewUserRepository(store)
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, "missing"); !errors.HasCode(err, errors.ErrCodeUserNotFound) {
		t.Errorf("GetByID = %v, want USER_NOT_FOUND", err)
	}
	if _, err := repo.GetByEmail(ctx, "nobody@example.com"); !errors.HasCode(err, errors.ErrCodeAccountNotFound) {
		t.Errorf("GetByEmail = %v, want ACCOUNT_NOT_FOUND", err)
	}
	if err := repo.Update(ctx, newTestUser(user.PlanStarter)); !errors.HasCode(err, errors.ErrCodeUserNotFound) {
		t.Errorf("Update = %v, want USER_NOT_FOUND", err)
	}
	if err := repo.Delete(ctx, "missing"); !errors.HasCode(err, errors.ErrCodeUserNotFound) {
		t.Errorf("Delete = %v, want USER_NOT_FOUND", err)
	}
}

func TestUserRepositoryDuplicateEmail(t *testing.T) {
	store := newTestStore(t)
	repo := NewUserRepository(store)
	ctx := context.Background()

	if err := repo.Create(ctx, newTestUser(user.PlanStarter)); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	// A concurrent signup can slip past the service-level uniqueness check,
	// so the index conflict itself must come back as a duplicate account
	err := repo.Create(ctx, newTestUser(user.PlanStarter))
	if !errors.HasCode(err, errors.ErrCodeDuplicateAccount) {
		t.Errorf("duplicate Create = %v, want DUPLICATE_ACCOUNT", err)
	}

	// Same conflict through the update path
	other := newTestUser(user.PlanStarter)
	other.Email = "other@example.com"
	if err := repo.Create(ctx, other); err != nil {
		t.Fatalf("Create other failed: %v", err)
	}
	other.Email = "ada@example.com"
	if err := repo.Update(ctx, other); !errors.HasCode(err, errors.ErrCodeDuplicateAccount) {
		t.Errorf("conflicting Update = %v, want DUPLICATE_ACCOUNT", err)
	}
}

func TestAuditRepositoryRoundTrip(t *testing.T) {
	store := newTestStore(t)
	users := NewUserRepository(store)
	audits := NewAuditRepository(store)
	ctx := context.Background()

	owner := newTestUser(user.PlanPro)
	if err := users.Create(ctx, owner); err != nil {
		t.Fatalf("Create user failed: %v", err)
	}

	rec := newTestRecord(owner.ID, "Freelance Agreement")
	if err := audits.Create(ctx, rec); err != nil {
		t.Fatalf("Create audit failed: %v", err)
	}

	got, err := audits.GetByID(ctx, rec.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.ContractTitle != "Freelance Agreement" {
		t.Errorf("title = %q", got.ContractTitle)
	}
	if got.HealthScore != 55 || got.Verdict != audit.VerdictCaution {
		t.Errorf("score/verdict = %d/%s", got.HealthScore, got.Verdict)
	}
	if len(got.RedFlags) != 1 {
		t.Fatalf("red flags = %d, want 1", len(got.RedFlags))
	}
	flag := got.RedFlags[0]
	if flag.Category != audit.CategoryPaymentTerms || flag.Severity != audit.SeverityHigh {
		t.Errorf("flag = %+v", flag)
	}
	if flag.Alternative == "" || flag.Explanation == "" {
		t.Error("flag detail fields lost in round trip")
	}
	if got.NegotiationEmail != rec.NegotiationEmail {
		t.Errorf("negotiation email = %q", got.NegotiationEmail)
	}
	if got.CreatedAt.IsZero() {
		t.Error("createdAt not set")
	}

	ownerAfter, err := users.GetByID(ctx, owner.ID)
	if err != nil {
		t.Fatalf("GetByID owner failed: %v", err)
	}
	if ownerAfter.AuditCount != 1 {
		t.Errorf("audit count = %d, want 1", ownerAfter.AuditCount)
	}
}

func TestAuditRepositoryQuota(t *testing.T) {
	store := newTestStore(t)
	users := NewUserRepository(store)
	audits := NewAuditRepository(store)
	ctx := context.Background()

	owner := newTestUser(user.PlanStarter)
	if err := users.Create(ctx, owner); err != nil {
		t.Fatalf("Create user failed: %v", err)
	}

	for i := 0; i < audit.StarterAuditLimit; i++ {
		if err := audits.Create(ctx, newTestRecord(owner.ID, "Contract")); err != nil {
			t.Fatalf("Create audit %d failed: %v", i+1, err)
		}
	}

	err := audits.Create(ctx, newTestRecord(owner.ID, "One too many"))
	if !errors.HasCode(err, errors.ErrCodeQuotaExceeded) {
		t.Fatalf("Create over quota = %v, want QUOTA_EXCEEDED", err)
	}

	// The rejected insert must leave no trace
	list, err := audits.ListByUser(ctx, owner.ID)
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(list) != audit.StarterAuditLimit {
		t.Errorf("list length = %d, want %d", len(list), audit.StarterAuditLimit)
	}
	ownerAfter, _ := users.GetByID(ctx, owner.ID)
	if ownerAfter.AuditCount != audit.StarterAuditLimit {
		t.Errorf("audit count = %d, want %d", ownerAfter.AuditCount, audit.StarterAuditLimit)
	}
}

func TestAuditRepositoryListOrdering(t *testing.T) {
	store := newTestStore(t)
	users := NewUserRepository(store)
	audits := NewAuditRepository(store)
	ctx := context.Background()

	owner := newTestUser(user.PlanBusiness)
	if err := users.Create(ctx, owner); err != nil {
		t.Fatalf("Create user failed: %v", err)
	}

	titles := []string{"First", "Second", "Third"}
	for _, title := range titles {
		if err := audits.Create(ctx, newTestRecord(owner.ID, title)); err != nil {
			t.Fatalf("Create %q failed: %v", title, err)
		}
		// Created-at has millisecond resolution; keep insert times distinct
		time.Sleep(2 * time.Millisecond)
	}

	list, err := audits.ListByUser(ctx, owner.ID)
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("list length = %d, want 3", len(list))
	}
	want := []string{"Third", "Second", "First"}
	for i, title := range want {
		if list[i].ContractTitle != title {
			t.Errorf("list[%d] = %q, want %q", i, list[i].ContractTitle, title)
		}
	}
}

func TestAuditRepositoryListStableOrder(t *testing.T) {
	store := newTestStore(t)
	users := NewUserRepository(store)
	audits := NewAuditRepository(store)
	ctx := context.Background()

	owner := newTestUser(user.PlanBusiness)
	if err := users.Create(ctx, owner); err != nil {
		t.Fatalf("Create user failed: %v", err)
	}

	// Back-to-back inserts can share a created-at millisecond; the id
	// tiebreaker must keep the listing stable across reads
	for i := 0; i < 5; i++ {
		if err := audits.Create(ctx, newTestRecord(owner.ID, "Burst")); err != nil {
			t.Fatalf("Create audit %d failed: %v", i+1, err)
		}
	}

	first, err := audits.ListByUser(ctx, owner.ID)
	if err != nil {
		t.Fatalf("first ListByUser failed: %v", err)
	}
	second, err := audits.ListByUser(ctx, owner.ID)
	if err != nil {
		t.Fatalf("second ListByUser failed: %v", err)
	}

	if len(first) != 5 || len(second) != 5 {
		t.Fatalf("list lengths = %d/%d, want 5/5", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("list[%d] = %q then %q, ordering not stable", i, first[i].ID, second[i].ID)
		}
	}
}

func TestAuditRepositoryDelete(t *testing.T) {
	store := newTestStore(t)
	users := NewUserRepository(store)
	audits := NewAuditRepository(store)
	ctx := context.Background()

	owner := newTestUser(user.PlanPro)
	if err := users.Create(ctx, owner); err != nil {
		t.Fatalf("Create user failed: %v", err)
	}
	rec := newTestRecord(owner.ID, "Doomed")
	if err := audits.Create(ctx, rec); err != nil {
		t.Fatalf("Create audit failed: %v", err)
	}

	if err := audits.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := audits.GetByID(ctx, rec.ID); !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Errorf("GetByID after delete = %v, want NOT_FOUND", err)
	}
	if err := audits.Delete(ctx, rec.ID); !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Errorf("second Delete = %v, want NOT_FOUND", err)
	}
}

func TestUserDeleteCascadesAudits(t *testing.T) {
	store := newTestStore(t)
	users := NewUserRepository(store)
	audits := NewAuditRepository(store)
	ctx := context.Background()

	owner := newTestUser(user.PlanPro)
	if err := users.Create(ctx, owner); err != nil {
		t.Fatalf("Create user failed: %v", err)
	}
	rec := newTestRecord(owner.ID, "Goes with the account")
	if err := audits.Create(ctx, rec); err != nil {
		t.Fatalf("Create audit failed: %v", err)
	}

	if err := users.Delete(ctx, owner.ID); err != nil {
		t.Fatalf("Delete user failed: %v", err)
	}
	if _, err := audits.GetByID(ctx, rec.ID); !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Errorf("audit survived account deletion: %v", err)
	}
}

func TestAuditCreateUnknownUser(t *testing.T) {
	store := newTestStore(t)
	audits := NewAuditRepository(store)

	err := audits.Create(context.Background(), newTestRecord("missing", "Orphan"))
	if !errors.HasCode(err, errors.ErrCodeUserNotFound) {
		t.Errorf("Create = %v, want USER_NOT_FOUND", err)
	}
}

func TestRebind(t *testing.T) {
	pg := &Store{driver: "postgres"}
	lite := &Store{driver: "sqlite"}

	got := pg.rebind(`SELECT * FROM users WHERE id = ? AND plan = ?`)
	want := `SELECT * FROM users WHERE id = $1 AND plan = $2`
	if got != want {
		t.Errorf("rebind = %q, want %q", got, want)
	}

	passthrough := `SELECT * FROM users WHERE id = ?`
	if got := lite.rebind(passthrough); got != passthrough {
		t.Errorf("sqlite rebind = %q, want unchanged", got)
	}
}
