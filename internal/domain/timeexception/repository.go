package timeexception

import (
	"context"

	"github.com/hrmsuite/time-management-backend-go/internal/domain/attendance"
)

// Repository defines data access for time exceptions.
type Repository interface {
	// Create persists a new exception and fills in ID and timestamps.
	Create(ctx context.Context, exc Exception) (Exception, error)

	// GetByID retrieves an exception by its identifier.
	GetByID(ctx context.Context, id ExceptionID) (Exception, error)

	// Update overwrites status, assignee and escalation count.
	Update(ctx context.Context, exc Exception) error

	// ListByRecord retrieves every exception owned by a record.
	ListByRecord(ctx context.Context, recordID attendance.RecordID) ([]Exception, error)

	// Delete removes an exception. Only the attendance computation calls
	// this, to withdraw an OPEN exception whose anomaly no longer exists;
	// exceptions that entered the review workflow are never deleted.
	Delete(ctx context.Context, id ExceptionID) error

	// List retrieves exceptions matching the filter with pagination.
	List(ctx context.Context, filter ListFilter) ([]Exception, int64, error)
}
