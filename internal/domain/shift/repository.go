package shift

import (
	"context"
	"time"
)

// Repository defines data access for shift assignments.
type Repository interface {
	// Create persists a new assignment and fills in ID and timestamps.
	Create(ctx context.Context, a Assignment) (Assignment, error)

	// GetByID retrieves an assignment by its identifier.
	GetByID(ctx context.Context, id AssignmentID) (Assignment, error)

	// Update overwrites the assignment's status.
	Update(ctx context.Context, a Assignment) error

	// ListExpiringBetween retrieves APPROVED assignments whose end date lies
	// in [from, to] inclusive. Open-ended assignments never match.
	ListExpiringBetween(ctx context.Context, from, to time.Time) ([]Assignment, error)

	// List retrieves assignments matching the filter with pagination.
	List(ctx context.Context, filter ListFilter) ([]Assignment, int64, error)
}
