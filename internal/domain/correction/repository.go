package correction

import (
	"context"

	"github.com/hrmsuite/time-management-backend-go/internal/domain/attendance"
)

// Repository defines data access for correction requests.
type Repository interface {
	// Create persists a new request and fills in ID and timestamps.
	Create(ctx context.Context, req Request) (Request, error)

	// GetByID retrieves a request by its identifier.
	GetByID(ctx context.Context, id RequestID) (Request, error)

	// Update overwrites the request's status.
	Update(ctx context.Context, req Request) error

	// CountOpenByRecord counts non-terminal requests targeting a record,
	// optionally excluding one request (the one being resolved).
	CountOpenByRecord(ctx context.Context, recordID attendance.RecordID, exclude RequestID) (int, error)

	// List retrieves requests matching the filter with pagination.
	List(ctx context.Context, filter ListFilter) ([]Request, int64, error)
}
