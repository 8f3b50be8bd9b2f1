package holiday

import (
	"time"
)

// HolidayID identifies a holiday calendar entry.
type HolidayID string

func (id HolidayID) String() string { return string(id) }
func (id HolidayID) IsZero() bool   { return id == "" }

// Type classifies a holiday.
type Type string

const (
	TypeNational       Type = "NATIONAL"
	TypeOrganizational Type = "ORGANIZATIONAL"
	TypeWeeklyRest     Type = "WEEKLY_REST"
)

// IsValid reports whether t is a known holiday type.
func (t Type) IsValid() bool {
	return t == TypeNational || t == TypeOrganizational || t == TypeWeeklyRest
}

// Holiday is an exogenous calendar entry consulted, never mutated, by the
// attendance computation. A missing EndDate means a single-day holiday equal
// to StartDate.
type Holiday struct {
	ID        HolidayID
	Type      Type
	StartDate time.Time
	EndDate   *time.Time
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Covers reports whether the holiday spans the given day.
func (h Holiday) Covers(day time.Time) bool {
	if !h.Active {
		return false
	}
	day = day.UTC().Truncate(24 * time.Hour)
	start := h.StartDate.UTC().Truncate(24 * time.Hour)
	end := start
	if h.EndDate != nil {
		end = h.EndDate.UTC().Truncate(24 * time.Hour)
	}
	return !day.Before(start) && !day.After(end)
}
