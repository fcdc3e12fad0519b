package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/contractlens/contractlens/internal/domain/audit"
	"github.com/contractlens/contractlens/internal/domain/user"
	"github.com/contractlens/contractlens/internal/pkg/errors"
)

// AuditRepository implements audit.Repository
type AuditRepository struct {
	store *Store
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(store *Store) audit.Repository {
	return &AuditRepository{store: store}
}

const auditColumns = `id, user_id, contract_title, health_score, verdict, summary, red_flags, negotiation_email, created_at`

func scanAudit(row interface{ Scan(...interface{}) error }) (*audit.Record, error) {
	var rec audit.Record
	var redFlags []byte
	var createdAt int64

	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.ContractTitle, &rec.HealthScore,
		&rec.Verdict, &rec.Summary, &redFlags, &rec.NegotiationEmail, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(redFlags, &rec.RedFlags); err != nil {
		return nil, err
	}
	rec.CreatedAt = time.UnixMilli(createdAt)

	return &rec, nil
}

// Create persists rec. The quota check against the owner's plan, the insert,
// and the audit count increment run in a single transaction so a quota
// failure leaves no trace.
func (r *AuditRepository) Create(ctx context.Context, rec *audit.Record) error {
	tx, err := r.store.DB.BeginTx(ctx, nil)
	if err != nil {
		return errors.DatabaseError("Failed to begin transaction", err)
	}
	defer tx.Rollback()

	var plan string
	var auditCount int
	query := r.store.rebind(`SELECT plan, audit_count FROM users WHERE id = ?`) + r.store.forUpdate()
	err = tx.QueryRowContext(ctx, query, rec.UserID).Scan(&plan, &auditCount)
	if err == sql.ErrNoRows {
		return errors.UserNotFound()
	}
	if err != nil {
		return errors.DatabaseError("Failed to load audit owner", err)
	}

	if !user.UnlimitedAudits(plan) && auditCount >= audit.StarterAuditLimit {
		return errors.QuotaExceeded(audit.StarterAuditLimit)
	}

	redFlags, err := json.Marshal(rec.RedFlags)
	if err != nil {
		return errors.Internal("Failed to encode red flags", err)
	}

	rec.CreatedAt = time.Now()
	insert := r.store.rebind(`
		INSERT INTO audits (id, user_id, contract_title, health_score, verdict, summary, red_flags, negotiation_email, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err = tx.ExecContext(ctx, insert,
		rec.ID, rec.UserID, rec.ContractTitle, rec.HealthScore,
		rec.Verdict, rec.Summary, redFlags, rec.NegotiationEmail, rec.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create audit", err)
	}

	increment := r.store.rebind(`UPDATE users SET audit_count = audit_count + 1, updated_at = ? WHERE id = ?`)
	if _, err := tx.ExecContext(ctx, increment, time.Now().Unix(), rec.UserID); err != nil {
		return errors.DatabaseError("Failed to increment audit count", err)
	}

	if err := tx.Commit(); err != nil {
		return errors.DatabaseError("Failed to commit audit", err)
	}

	return nil
}

// GetByID retrieves a record by ID
func (r *AuditRepository) GetByID(ctx context.Context, id string) (*audit.Record, error) {
	query := r.store.rebind(`SELECT ` + auditColumns + ` FROM audits WHERE id = ?`)

	rec, err := scanAudit(r.store.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Audit")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get audit", err)
	}

	return rec, nil
}

// ListByUser retrieves all records for a user, most recent first
func (r *AuditRepository) ListByUser(ctx context.Context, userID string) ([]*audit.Record, error) {
	query := r.store.rebind(`
		SELECT ` + auditColumns + `
		FROM audits
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`)

	rows, err := r.store.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list audits", err)
	}
	defer rows.Close()

	records := []*audit.Record{}
	for rows.Next() {
		rec, err := scanAudit(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan audit", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate audits", err)
	}

	return records, nil
}

// Delete removes a single record by ID
func (r *AuditRepository) Delete(ctx context.Context, id string) error {
	result, err := r.store.DB.ExecContext(ctx, r.store.rebind(`DELETE FROM audits WHERE id = ?`), id)
	if err != nil {
		return errors.DatabaseError("Failed to delete audit", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Audit")
	}

	return nil
}
