package notification

import (
	"time"

	"github.com/hrmsuite/time-management-backend-go/internal/domain/ref"
)

// Type tags the lifecycle event a log entry records.
type Type string

const (
	TypeExceptionRaised     Type = "exception_raised"
	TypeExceptionEscalated  Type = "exception_escalated"
	TypeCorrectionSubmitted Type = "correction_submitted"
	TypeCorrectionResolved  Type = "correction_resolved"
	TypeShiftExpiring       Type = "shift_expiring"
	TypeShiftExpirySummary  Type = "shift_expiry_summary"
)

// Log is one append-only entry emitted by the lifecycle. Entries are never
// updated or deleted.
type Log struct {
	ID        string
	To        ref.EmployeeID
	Type      Type
	Message   string
	CreatedAt time.Time
}
