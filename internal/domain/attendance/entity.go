package attendance

import (
	"time"

	"github.com/hrmsuite/time-management-backend-go/internal/domain/ref"
)

// RecordID identifies an attendance record.
type RecordID string

func (id RecordID) String() string { return string(id) }
func (id RecordID) IsZero() bool   { return id == "" }

// PunchType is the direction of a single punch event.
type PunchType string

const (
	PunchIn  PunchType = "IN"
	PunchOut PunchType = "OUT"
)

// IsValid reports whether t is a known punch type.
func (t PunchType) IsValid() bool {
	return t == PunchIn || t == PunchOut
}

// Punch is a single clock-in or clock-out timestamp event.
type Punch struct {
	Type PunchType `json:"type"`
	Time time.Time `json:"time"`
}

// Record is the per-employee daily punch ledger. One record exists per
// employee per day; it is created on the first punch of the day and never
// deleted. TotalWorkMinutes and HasMissedPunch are derived from Punches and
// must only be written by the computation.
type Record struct {
	ID               RecordID
	EmployeeID       ref.EmployeeID
	Date             time.Time
	Punches          []Punch
	TotalWorkMinutes int
	HasMissedPunch   bool
	ExceptionIDs     []string

	// FinalisedForPayroll must be false while any unresolved correction
	// request targets this record.
	FinalisedForPayroll bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewRecord returns an empty ledger for the given employee and work day.
// The day is truncated to midnight UTC so there is a single canonical date
// key per period.
func NewRecord(employeeID ref.EmployeeID, day time.Time) Record {
	return Record{
		EmployeeID:          employeeID,
		Date:                DayOf(day),
		Punches:             []Punch{},
		ExceptionIDs:        []string{},
		FinalisedForPayroll: true,
	}
}

// DayOf truncates a timestamp to its UTC work day.
func DayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
