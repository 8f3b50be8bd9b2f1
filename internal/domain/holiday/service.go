package holiday

import (
	"context"
	"time"
)

// Service defines business logic for the holiday calendar.
type Service interface {
	// CreateHoliday stores a new active calendar entry.
	CreateHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)

	// ListHolidays retrieves every calendar entry.
	ListHolidays(ctx context.Context) (ListHolidaysResponse, error)

	// IsWorkingDay reports whether the day counts toward expected work time,
	// i.e. no active holiday covers it.
	IsWorkingDay(ctx context.Context, day time.Time) (bool, error)
}
