package testutil

import (
	"context"
	"time"

	"github.com/contractlens/contractlens/internal/domain/audit"
	"github.com/contractlens/contractlens/internal/domain/user"
	"github.com/contractlens/contractlens/internal/pkg/errors"
)

// MockUserRepository is an in-memory implementation of user.Repository
type MockUserRepository struct {
	Users       map[string]*user.User
	EmailIndex  map[string]*user.User
	Audits      *MockAuditRepository
	CreateError error
	GetError    error
	UpdateError error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:      make(map[string]*user.User),
		EmailIndex: make(map[string]*user.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	now := time.Now()
	u.JoinedAt = now
	u.UpdatedAt = now
	m.Users[u.ID] = u
	m.EmailIndex[u.Email] = u
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.Users[id]
	if !ok {
		return nil, errors.UserNotFound()
	}
	return u, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.EmailIndex[email]
	if !ok {
		return nil, errors.AccountNotFound()
	}
	return u, nil
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, ok := m.Users[u.ID]; !ok {
		return errors.UserNotFound()
	}
	u.UpdatedAt = time.Now()
	m.Users[u.ID] = u

	// Callers mutate the record they fetched, so rebuild the index rather
	// than chase the old email
	m.EmailIndex = make(map[string]*user.User, len(m.Users))
	for _, stored := range m.Users {
		m.EmailIndex[stored.Email] = stored
	}
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	u, ok := m.Users[id]
	if !ok {
		return errors.UserNotFound()
	}
	delete(m.EmailIndex, u.Email)
	delete(m.Users, id)
	if m.Audits != nil {
		m.Audits.dropByUser(id)
	}
	return nil
}

// MockAuditRepository is an in-memory implementation of audit.Repository.
// Records are kept most-recent-first, matching the persisted ordering.
type MockAuditRepository struct {
	Records     []*audit.Record
	Users       *MockUserRepository
	CreateError error
}

func NewMockAuditRepository(users *MockUserRepository) *MockAuditRepository {
	m := &MockAuditRepository{Users: users}
	if users != nil {
		users.Audits = m
	}
	return m
}

func (m *MockAuditRepository) Create(ctx context.Context, rec *audit.Record) error {
	if m.CreateError != nil {
		return m.CreateError
	}

	owner, ok := m.Users.Users[rec.UserID]
	if !ok {
		return errors.UserNotFound()
	}
	if !user.UnlimitedAudits(owner.Plan) && owner.AuditCount >= audit.StarterAuditLimit {
		return errors.QuotaExceeded(audit.StarterAuditLimit)
	}

	rec.CreatedAt = time.Now()
	m.Records = append([]*audit.Record{rec}, m.Records...)
	owner.AuditCount++
	return nil
}

func (m *MockAuditRepository) GetByID(ctx context.Context, id string) (*audit.Record, error) {
	for _, rec := range m.Records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, errors.NotFound("Audit")
}

func (m *MockAuditRepository) ListByUser(ctx context.Context, userID string) ([]*audit.Record, error) {
	result := []*audit.Record{}
	for _, rec := range m.Records {
		if rec.UserID == userID {
			result = append(result, rec)
		}
	}
	return result, nil
}

func (m *MockAuditRepository) Delete(ctx context.Context, id string) error {
	for i, rec := range m.Records {
		if rec.ID == id {
			m.Records = append(m.Records[:i], m.Records[i+1:]...)
			return nil
		}
	}
	return errors.NotFound("Audit")
}

func (m *MockAuditRepository) dropByUser(userID string) {
	kept := m.Records[:0]
	for _, rec := range m.Records {
		if rec.UserID != userID {
			kept = append(kept, rec)
		}
	}
	m.Records = kept
}
