package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/contractlens/contractlens/internal/domain/user"
	"github.com/contractlens/contractlens/internal/pkg/errors"
)

func nowUnix() int64 {
	return time.Now().Unix()
}

// isUniqueViolation reports whether err is a unique-index conflict from
// either supported driver. The service layer pre-checks email uniqueness,
// but a concurrent signup can still land here.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// UserRepository implements user.Repository
type UserRepository struct {
	store *Store
}

// NewUserRepository creates a new user repository
func NewUserRepository(store *Store) user.Repository {
	return &UserRepository{store: store}
}

const userColumns = `id, email, name, avatar_url, password_hash, plan, audit_count, joined_at, updated_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*user.User, error) {
	var u user.User
	var name, avatarURL sql.NullString
	var joinedAt, updatedAt int64

	err := row.Scan(
		&u.ID, &u.Email, &name, &avatarURL, &u.PasswordHash,
		&u.Plan, &u.AuditCount, &joinedAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if name.Valid {
		u.Name = &name.String
	}
	if avatarURL.Valid {
		u.AvatarURL = &avatarURL.String
	}
	u.JoinedAt = time.Unix(joinedAt, 0)
	u.UpdatedAt = time.Unix(updatedAt, 0)

	return &u, nil
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	now := time.Now()
	u.JoinedAt = now
	u.UpdatedAt = now

	query := r.store.rebind(`
		INSERT INTO users (id, email, name, avatar_url, password_hash, plan, audit_count, joined_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := r.store.DB.ExecContext(ctx, query,
		u.ID, u.Email, u.Name, u.AvatarURL, u.PasswordHash,
		u.Plan, u.AuditCount, now.Unix(), now.Unix(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.DuplicateAccount()
		}
		return errors.DatabaseError("Failed to create user", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	query := r.store.rebind(`SELECT ` + userColumns + ` FROM users WHERE id = ?`)

	u, err := scanUser(r.store.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.UserNotFound()
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get user", err)
	}

	return u, nil
}

// GetByEmail retrieves a user by normalized email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := r.store.rebind(`SELECT ` + userColumns + ` FROM users WHERE email = ?`)

	u, err := scanUser(r.store.DB.QueryRowContext(ctx, query, email))
	if err == sql.ErrNoRows {
		return nil, errors.AccountNotFound()
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get user", err)
	}

	return u, nil
}

// Update updates a user
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	u.UpdatedAt = time.Now()

	query := r.store.rebind(`
		UPDATE users
		SET email = ?, name = ?, avatar_url = ?, password_hash = ?, plan = ?, audit_count = ?, updated_at = ?
		WHERE id = ?
	`)

	result, err := r.store.DB.ExecContext(ctx, query,
		u.Email, u.Name, u.AvatarURL, u.PasswordHash,
		u.Plan, u.AuditCount, u.UpdatedAt.Unix(), u.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.DuplicateAccount()
		}
		return errors.DatabaseError("Failed to update user", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.UserNotFound()
	}

	return nil
}

// Delete deletes a user and all of that user's audit records in one
// transaction. A failure in either step leaves both collections untouched.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.store.DB.BeginTx(ctx, nil)
	if err != nil {
		return errors.DatabaseError("Failed to begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, r.store.rebind(`DELETE FROM audits WHERE user_id = ?`), id); err != nil {
		return errors.DatabaseError("Failed to delete user audits", err)
	}

	result, err := tx.ExecContext(ctx, r.store.rebind(`DELETE FROM users WHERE id = ?`), id)
	if err != nil {
		return errors.DatabaseError("Failed to delete user", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.UserNotFound()
	}

	if err := tx.Commit(); err != nil {
		return errors.DatabaseError("Failed to commit deletion", err)
	}

	return nil
}
