package timeexception

import (
	"time"

	"github.com/hrmsuite/time-management-backend-go/internal/domain/attendance"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/ref"
)

// ExceptionID identifies a time exception.
type ExceptionID string

func (id ExceptionID) String() string { return string(id) }
func (id ExceptionID) IsZero() bool   { return id == "" }

// Kind classifies the anomaly an exception records.
type Kind string

const (
	KindMissedPunch      Kind = "MISSED_PUNCH"
	KindLate             Kind = "LATE"
	KindEarlyLeave       Kind = "EARLY_LEAVE"
	KindShortTime        Kind = "SHORT_TIME"
	KindOvertimeRequest  Kind = "OVERTIME_REQUEST"
	KindManualAdjustment Kind = "MANUAL_ADJUSTMENT"
)

// IsValid reports whether k is a known exception kind.
func (k Kind) IsValid() bool {
	switch k {
	case KindMissedPunch, KindLate, KindEarlyLeave, KindShortTime,
		KindOvertimeRequest, KindManualAdjustment:
		return true
	}
	return false
}

// AmendsWorkedTime reports whether resolving an exception of this kind
// implies a correction to the owning record's worked time, which triggers a
// recomputation.
func (k Kind) AmendsWorkedTime() bool {
	return k == KindManualAdjustment || k == KindOvertimeRequest
}

// Status is a time exception's workflow state.
type Status string

const (
	StatusOpen      Status = "OPEN"
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusEscalated Status = "ESCALATED"
	StatusResolved  Status = "RESOLVED"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusPending, StatusApproved, StatusRejected,
		StatusEscalated, StatusResolved:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition may leave s.
func (s Status) IsTerminal() bool {
	return s == StatusResolved || s == StatusRejected
}

// transitions is the allowed outgoing set per status. Transitions are
// monotonic forward except ESCALATED, which may loop back to PENDING for a
// higher-tier assignee.
var transitions = map[Status][]Status{
	StatusOpen:      {StatusPending},
	StatusPending:   {StatusApproved, StatusRejected, StatusEscalated},
	StatusApproved:  {StatusResolved},
	StatusEscalated: {StatusPending, StatusResolved},
	StatusRejected:  {},
	StatusResolved:  {},
}

// CanTransition reports whether from permits a move to to.
func CanTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// MaxEscalations caps how many times a single exception may loop through
// ESCALATED back to PENDING. Unbounded retry is not intended.
const MaxEscalations = 3

// Exception is an anomaly attached to exactly one attendance record, moving
// through the review workflow until a terminal status.
type Exception struct {
	ID                 ExceptionID
	EmployeeID         ref.EmployeeID
	Kind               Kind
	AttendanceRecordID attendance.RecordID
	AssignedTo         ref.EmployeeID
	Status             Status
	Reason             *string
	EscalationCount    int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// New returns an OPEN exception owned by the given record and assigned to
// the employee responsible for resolving it.
func New(employeeID ref.EmployeeID, kind Kind, recordID attendance.RecordID, assignedTo ref.EmployeeID, reason *string) Exception {
	return Exception{
		EmployeeID:         employeeID,
		Kind:               kind,
		AttendanceRecordID: recordID,
		AssignedTo:         assignedTo,
		Status:             StatusOpen,
		Reason:             reason,
	}
}
