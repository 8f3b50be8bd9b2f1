package cron

import (
	"context"
	"time"

	"github.com/hrmsuite/time-management-backend-go/internal/domain/shift"
)

// ShiftJobs contains shift-related cron jobs
type ShiftJobs struct {
	shiftService  shift.Service
	lookaheadDays int
}

// NewShiftJobs creates shift cron jobs
func NewShiftJobs(shiftService shift.Service, lookaheadDays int) *ShiftJobs {
	return &ShiftJobs{
		shiftService:  shiftService,
		lookaheadDays: lookaheadDays,
	}
}

// RegisterJobs registers all shift-related cron jobs
func (j *ShiftJobs) RegisterJobs(scheduler *Scheduler) {
	// Notify holders of expiring shift assignments once a day
	scheduler.AddJob(
		"notify_expiring_shift_assignments",
		24*time.Hour,
		j.NotifyExpiringAssignments,
	)
}

// NotifyExpiringAssignments scans approved assignments ending inside the
// lookahead window and dispatches notifications for them.
func (j *ShiftJobs) NotifyExpiringAssignments(ctx context.Context) error {
	_, err := j.shiftService.NotifyExpiring(ctx, shift.ScanExpiringRequest{
		DaysBeforeExpiry: j.lookaheadDays,
	})
	return err
}
