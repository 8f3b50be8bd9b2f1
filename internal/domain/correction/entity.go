package correction

import (
	"time"

	"github.com/hrmsuite/time-management-backend-go/internal/domain/attendance"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/ref"
)

// RequestID identifies an attendance correction request.
type RequestID string

func (id RequestID) String() string { return string(id) }
func (id RequestID) IsZero() bool   { return id == "" }

// Status is a correction request's workflow state.
type Status string

const (
	StatusSubmitted Status = "SUBMITTED"
	StatusInReview  Status = "IN_REVIEW"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusEscalated Status = "ESCALATED"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusSubmitted, StatusInReview, StatusApproved, StatusRejected, StatusEscalated:
		return true
	}
	return false
}

// IsTerminal reports whether the request no longer blocks finalisation.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

var transitions = map[Status][]Status{
	StatusSubmitted: {StatusInReview, StatusApproved, StatusRejected},
	StatusInReview:  {StatusApproved, StatusRejected, StatusEscalated},
	StatusEscalated: {StatusInReview, StatusApproved, StatusRejected},
	StatusApproved:  {},
	StatusRejected:  {},
}

// CanTransition reports whether from permits a move to to. A decision may be
// taken directly from SUBMITTED; review and escalation are optional steps.
func CanTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Request is an employee-initiated dispute that reopens a finalised
// attendance record. While it is not terminal, the target record must stay
// blocked from payroll.
type Request struct {
	ID               RequestID
	EmployeeID       ref.EmployeeID
	AttendanceRecord attendance.RecordID
	Reason           *string
	Status           Status
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// New returns a SUBMITTED correction request against the given record.
func New(employeeID ref.EmployeeID, recordID attendance.RecordID, reason *string) Request {
	return Request{
		EmployeeID:       employeeID,
		AttendanceRecord: recordID,
		Reason:           reason,
		Status:           StatusSubmitted,
	}
}
