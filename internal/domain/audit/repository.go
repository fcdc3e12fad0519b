package audit

import "context"

// Repository defines the interface for audit data access
type Repository interface {
	// Create persists rec. The starter quota check, the insert, and the
	// owner's audit count increment happen as one atomic step: on a quota
	// failure neither the record nor the count is written.
	Create(ctx context.Context, rec *Record) error

	// GetByID retrieves a record by ID
	GetByID(ctx context.Context, id string) (*Record, error)

	// ListByUser retrieves all records for a user, most recent first.
	// An empty slice (not an error) is returned when none exist.
	ListByUser(ctx context.Context, userID string) ([]*Record, error)

	// Delete removes a single record by ID
	Delete(ctx context.Context, id string) error
}
