package shift

import (
	"time"

	"github.com/hrmsuite/time-management-backend-go/internal/domain/ref"
)

// AssignmentID identifies a shift assignment.
type AssignmentID string

func (id AssignmentID) String() string { return string(id) }
func (id AssignmentID) IsZero() bool   { return id == "" }

// Status is a shift assignment's lifecycle state.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusCancelled Status = "CANCELLED"
	StatusExpired   Status = "EXPIRED"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

var transitions = map[Status][]Status{
	StatusPending:   {StatusApproved, StatusCancelled},
	StatusApproved:  {StatusCancelled, StatusExpired},
	StatusCancelled: {},
	StatusExpired:   {},
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

// AssignmentEnd says when an assignment stops applying: either ongoing with
// no end, or until a fixed date. The zero value is Ongoing, so a missing end
// date can never be confused with an accidental zero time.
type AssignmentEnd struct {
	until *time.Time
}

// Ongoing returns an open-ended assignment end.
func Ongoing() AssignmentEnd {
	return AssignmentEnd{}
}

// Until returns an assignment end fixed at the given date.
func Until(date time.Time) AssignmentEnd {
	d := date.UTC().Truncate(24 * time.Hour)
	return AssignmentEnd{until: &d}
}

// IsOngoing reports whether the assignment has no end date.
func (e AssignmentEnd) IsOngoing() bool { return e.until == nil }

// Date returns the end date and whether one is set.
func (e AssignmentEnd) Date() (time.Time, bool) {
	if e.until == nil {
		return time.Time{}, false
	}
	return *e.until, true
}

// Binding says which granularity an assignment targets. Exactly one of the
// three identifiers is set.
type Binding struct {
	EmployeeID   ref.EmployeeID
	DepartmentID ref.DepartmentID
	PositionID   ref.PositionID
}

// IsValid reports whether exactly one binding identifier is set.
func (b Binding) IsValid() bool {
	n := 0
	if !b.EmployeeID.IsZero() {
		n++
	}
	if !b.DepartmentID.IsZero() {
		n++
	}
	if !b.PositionID.IsZero() {
		n++
	}
	return n == 1
}

// Assignment binds an employee, department or position to a shift for a date
// range.
type Assignment struct {
	ID             AssignmentID
	Binding        Binding
	ShiftID        ref.ShiftID
	ScheduleRuleID ref.ScheduleRuleID
	StartDate      time.Time
	End            AssignmentEnd
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// New returns a PENDING assignment. The caller must have validated the
// binding and date range.
func New(binding Binding, shiftID ref.ShiftID, ruleID ref.ScheduleRuleID, start time.Time, end AssignmentEnd) Assignment {
	return Assignment{
		Binding:        binding,
		ShiftID:        shiftID,
		ScheduleRuleID: ruleID,
		StartDate:      start.UTC().Truncate(24 * time.Hour),
		End:            end,
		Status:         StatusPending,
	}
}

// Urgency buckets how soon an approved assignment expires.
type Urgency string

const (
	UrgencyHigh   Urgency = "HIGH"
	UrgencyMedium Urgency = "MEDIUM"
	UrgencyLow    Urgency = "LOW"
)

// UrgencyFor classifies days-remaining into a tier. Thresholds are a fixed
// policy: HIGH at two days or less, MEDIUM at three to seven, LOW beyond.
func UrgencyFor(daysRemaining int) Urgency {
	switch {
	case daysRemaining <= 2:
		return UrgencyHigh
	case daysRemaining <= 7:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}
