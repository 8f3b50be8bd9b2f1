package holiday

import (
	"context"
	"time"
)

// Repository defines data access for the holiday calendar.
type Repository interface {
	// Create persists a new holiday and fills in ID and timestamps.
	Create(ctx context.Context, h Holiday) (Holiday, error)

	// ListActiveOn retrieves active holidays covering the given day.
	ListActiveOn(ctx context.Context, day time.Time) ([]Holiday, error)

	// List retrieves all holidays.
	List(ctx context.Context) ([]Holiday, error)
}
