package attendance

import (
	"context"
	"time"

	"github.com/hrmsuite/time-management-backend-go/internal/domain/ref"
)

// RecordRepository defines data access for attendance records. Records are
// append-and-update only; there is no delete (audit trail).
type RecordRepository interface {
	// Create persists a new record and fills in ID and timestamps.
	Create(ctx context.Context, rec Record) (Record, error)

	// GetByID retrieves a record by its identifier.
	GetByID(ctx context.Context, id RecordID) (Record, error)

	// GetByEmployeeAndDate retrieves the record for one employee on one work
	// day. Returns nil when no record exists yet.
	GetByEmployeeAndDate(ctx context.Context, employeeID ref.EmployeeID, day time.Time) (*Record, error)

	// Update overwrites punches, derived fields and the finalisation flag.
	Update(ctx context.Context, rec Record) error

	// List retrieves records matching the filter with pagination.
	List(ctx context.Context, filter ListRecordsFilter) ([]Record, int64, error)
}
