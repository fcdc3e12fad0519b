package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/contractlens/contractlens/internal/domain/audit"
	"github.com/contractlens/contractlens/internal/domain/user"
	"github.com/contractlens/contractlens/internal/pkg/errors"
	"github.com/contractlens/contractlens/internal/pkg/logger"
	"github.com/contractlens/contractlens/internal/pkg/metrics"
)

// AuditService implements audit.Service
type AuditService struct {
	audits audit.Repository
	users  user.Repository
	logger *logger.Logger
}

// NewAuditService creates a new audit ledger service
func NewAuditService(audits audit.Repository, users user.Repository, log *logger.Logger) audit.Service {
	return &AuditService{
		audits: audits,
		users:  users,
		logger: log,
	}
}

// Record appends an audit for the user. The repository enforces the starter
// quota atomically with the insert and the count increment, so a quota
// failure never leaves a partial write.
func (s *AuditService) Record(ctx context.Context, userID, title string, result *audit.AnalysisResult) (*audit.Record, error) {
	if result == nil {
		return nil, errors.BadRequest("Analysis result is required")
	}

	owner, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = audit.DefaultTitle
	}

	rec := &audit.Record{
		ID:             uuid.NewString(),
		UserID:         userID,
		ContractTitle:  title,
		AnalysisResult: *result,
	}

	if err := s.audits.Create(ctx, rec); err != nil {
		if !errors.HasCode(err, errors.ErrCodeQuotaExceeded) {
			s.logger.ErrorWithErr(err, "Failed to record audit")
		}
		return nil, err
	}

	metrics.RecordAudit(owner.Plan)
	s.logger.WithFields(map[string]interface{}{
		"audit_id":     rec.ID,
		"user_id":      userID,
		"health_score": rec.HealthScore,
	}).Info("Audit recorded")

	return rec, nil
}

// List returns the user's audit history, most recent first
func (s *AuditService) List(ctx context.Context, userID string) ([]*audit.Record, error) {
	return s.audits.ListByUser(ctx, userID)
}

// Get retrieves one record. A record owned by someone else is reported as
// not found rather than forbidden, so IDs cannot be probed.
func (s *AuditService) Get(ctx context.Context, userID, auditID string) (*audit.Record, error) {
	rec, err := s.audits.GetByID(ctx, auditID)
	if err != nil {
		return nil, err
	}
	if rec.UserID != userID {
		return nil, errors.NotFound("Audit")
	}
	return rec, nil
}

// Delete removes one record after checking ownership
func (s *AuditService) Delete(ctx context.Context, userID, auditID string) error {
	rec, err := s.audits.GetByID(ctx, auditID)
	if err != nil {
		return err
	}
	if rec.UserID != userID {
		return errors.NotFound("Audit")
	}

	if err := s.audits.Delete(ctx, auditID); err != nil {
		s.logger.ErrorWithErr(err, "Failed to delete audit")
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"audit_id": auditID,
		"user_id":  userID,
	}).Info("Audit deleted")

	return nil
}

// RemainingQuota reports how many audits the user may still record
func (s *AuditService) RemainingQuota(ctx context.Context, userID string) (*audit.Quota, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.UnlimitedAudits(u.Plan) {
		return &audit.Quota{Unlimited: true}, nil
	}

	remaining := audit.StarterAuditLimit - u.AuditCount
	if remaining < 0 {
		remaining = 0
	}

	return &audit.Quota{
		Remaining: remaining,
		Limit:     audit.StarterAuditLimit,
	}, nil
}
