package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hrmsuite/time-management-backend-go/internal/domain/attendance"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/holiday"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/notification"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/ref"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/timeexception"
	"github.com/hrmsuite/time-management-backend-go/internal/pkg/database"
	"github.com/hrmsuite/time-management-backend-go/internal/pkg/validator"
)

// Config carries the lifecycle policy knobs for the attendance computation.
type Config struct {
	// DefaultReviewer is assigned to exceptions raised by the computation.
	// Resolving "who reviews" (e.g. the employee's manager) belongs to an
	// external collaborator; this is the fallback identity.
	DefaultReviewer ref.EmployeeID

	// StandardWorkMinutes is the expected worked time on a working day.
	// A complete punch sequence totalling less raises SHORT_TIME.
	StandardWorkMinutes int
}

type ServiceImpl struct {
	tx database.TxRunner
	attendance.RecordRepository
	exceptionRepo   timeexception.Repository
	holidayRepo     holiday.Repository
	notificationSvc notification.Service
	cfg             Config
}

func NewAttendanceService(
	tx database.TxRunner,
	recordRepo attendance.RecordRepository,
	exceptionRepo timeexception.Repository,
	holidayRepo holiday.Repository,
	notificationSvc notification.Service,
	cfg Config,
) attendance.Service {
	return &ServiceImpl{
		tx:               tx,
		RecordRepository: recordRepo,
		exceptionRepo:    exceptionRepo,
		holidayRepo:      holidayRepo,
		notificationSvc:  notificationSvc,
		cfg:              cfg,
	}
}

// RecordPunch implements attendance.Service.
func (s *ServiceImpl) RecordPunch(ctx context.Context, req attendance.RecordPunchRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	ts, ok := validator.IsValidDateTime(req.Timestamp)
	if !ok {
		return attendance.RecordResponse{}, validator.ValidationErrors{{
			Field:   "timestamp",
			Message: "timestamp must be a valid ISO8601 datetime",
		}}
	}
	ts = ts.UTC()
	if ts.After(time.Now().UTC().Add(5 * time.Minute)) {
		return attendance.RecordResponse{}, attendance.ErrFutureTimestamp
	}

	employeeID := ref.EmployeeID(req.EmployeeID)
	punch := attendance.Punch{Type: attendance.PunchType(req.PunchType), Time: ts}

	var result attendance.Record
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		existing, err := s.RecordRepository.GetByEmployeeAndDate(txCtx, employeeID, ts)
		if err != nil {
			return fmt.Errorf("failed to look up attendance record: %w", err)
		}

		var rec attendance.Record
		if existing == nil {
			rec, err = s.RecordRepository.Create(txCtx, attendance.NewRecord(employeeID, ts))
			if err != nil {
				return fmt.Errorf("failed to create attendance record: %w", err)
			}
		} else {
			rec = *existing
		}

		if n := len(rec.Punches); n > 0 && punch.Time.Before(rec.Punches[n-1].Time) {
			return attendance.ErrPunchOutOfOrder
		}
		rec.Punches = append(rec.Punches, punch)

		result, err = s.recompute(txCtx, rec)
		return err
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return attendance.ToResponse(result), nil
}

// Recompute implements attendance.Service.
func (s *ServiceImpl) Recompute(ctx context.Context, id attendance.RecordID) (attendance.RecordResponse, error) {
	var result attendance.Record
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		rec, err := s.RecordRepository.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		result, err = s.recompute(txCtx, rec)
		return err
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return attendance.ToResponse(result), nil
}

// recompute derives totals and flags from the punch sequence, reconciles the
// record's auto-raised time exceptions against the anomalies the sequence
// currently shows and persists the record. It is idempotent: an unchanged
// punch sequence never raises a second exception for the same anomaly, and
// an anomaly that disappeared (a later punch completed the pair) withdraws
// its still-OPEN exception. Exceptions that entered the review workflow are
// never withdrawn.
func (s *ServiceImpl) recompute(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	totals := Compute(rec.Punches)
	rec.TotalWorkMinutes = totals.WorkMinutes
	rec.HasMissedPunch = totals.HasMissedPunch

	existing, err := s.exceptionRepo.ListByRecord(ctx, rec.ID)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to list record exceptions: %w", err)
	}

	if err := s.reconcileMissedPunches(ctx, &rec, totals, existing); err != nil {
		return attendance.Record{}, err
	}
	if err := s.reconcileShortTime(ctx, &rec, totals, existing); err != nil {
		return attendance.Record{}, err
	}

	if err := s.RecordRepository.Update(ctx, rec); err != nil {
		return attendance.Record{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return rec, nil
}

// reconcileMissedPunches keeps exactly one MISSED_PUNCH exception per
// unmatched IN: the delta is created when the sequence shows more unmatched
// INs than materialised exceptions, and surplus OPEN exceptions are
// withdrawn (newest first) when a later OUT completed a pair.
func (s *ServiceImpl) reconcileMissedPunches(ctx context.Context, rec *attendance.Record, totals Totals, existing []timeexception.Exception) error {
	covered := 0
	var open []timeexception.Exception
	for _, exc := range existing {
		if exc.Kind != timeexception.KindMissedPunch {
			continue
		}
		covered++
		if exc.Status == timeexception.StatusOpen {
			open = append(open, exc)
		}
	}

	for ; covered < totals.UnmatchedIn; covered++ {
		exc, err := s.exceptionRepo.Create(ctx, timeexception.New(
			rec.EmployeeID,
			timeexception.KindMissedPunch,
			rec.ID,
			s.cfg.DefaultReviewer,
			nil,
		))
		if err != nil {
			return fmt.Errorf("failed to create missed punch exception: %w", err)
		}
		rec.ExceptionIDs = append(rec.ExceptionIDs, exc.ID.String())

		s.notify(ctx, s.cfg.DefaultReviewer, notification.TypeExceptionRaised,
			fmt.Sprintf("Missed punch detected for employee %s on %s", rec.EmployeeID, rec.Date.Format("2006-01-02")))
	}

	for i := len(open) - 1; i >= 0 && covered > totals.UnmatchedIn; i-- {
		if err := s.withdraw(ctx, rec, open[i]); err != nil {
			return err
		}
		covered--
	}

	return nil
}

// reconcileShortTime flags a complete punch sequence that falls short of the
// expected work time. Holidays never count toward expected work time, so the
// anomaly only exists on working days; when later punches lift the total to
// the standard, a still-OPEN SHORT_TIME exception is withdrawn.
func (s *ServiceImpl) reconcileShortTime(ctx context.Context, rec *attendance.Record, totals Totals, existing []timeexception.Exception) error {
	short := s.cfg.StandardWorkMinutes > 0 && !totals.HasMissedPunch &&
		totals.WorkMinutes > 0 && totals.WorkMinutes < s.cfg.StandardWorkMinutes
	if short {
		holidays, err := s.holidayRepo.ListActiveOn(ctx, rec.Date)
		if err != nil {
			return fmt.Errorf("failed to consult holiday calendar: %w", err)
		}
		short = len(holidays) == 0
	}

	covered := 0
	var open []timeexception.Exception
	for _, exc := range existing {
		if exc.Kind != timeexception.KindShortTime {
			continue
		}
		covered++
		if exc.Status == timeexception.StatusOpen {
			open = append(open, exc)
		}
	}

	if !short {
		for _, exc := range open {
			if err := s.withdraw(ctx, rec, exc); err != nil {
				return err
			}
		}
		return nil
	}

	if covered > 0 {
		return nil
	}

	reason := fmt.Sprintf("worked %d of %d expected minutes", totals.WorkMinutes, s.cfg.StandardWorkMinutes)
	exc, err := s.exceptionRepo.Create(ctx, timeexception.New(
		rec.EmployeeID,
		timeexception.KindShortTime,
		rec.ID,
		s.cfg.DefaultReviewer,
		&reason,
	))
	if err != nil {
		return fmt.Errorf("failed to create short time exception: %w", err)
	}
	rec.ExceptionIDs = append(rec.ExceptionIDs, exc.ID.String())

	s.notify(ctx, s.cfg.DefaultReviewer, notification.TypeExceptionRaised,
		fmt.Sprintf("Short time detected for employee %s on %s: %s", rec.EmployeeID, rec.Date.Format("2006-01-02"), reason))

	return nil
}

// withdraw deletes an OPEN auto-raised exception whose anomaly the current
// punch sequence no longer shows, and detaches it from the record.
func (s *ServiceImpl) withdraw(ctx context.Context, rec *attendance.Record, exc timeexception.Exception) error {
	if err := s.exceptionRepo.Delete(ctx, exc.ID); err != nil {
		return fmt.Errorf("failed to withdraw exception: %w", err)
	}
	for i, id := range rec.ExceptionIDs {
		if id == exc.ID.String() {
			rec.ExceptionIDs = append(rec.ExceptionIDs[:i], rec.ExceptionIDs[i+1:]...)
			break
		}
	}
	return nil
}

func (s *ServiceImpl) notify(ctx context.Context, to ref.EmployeeID, typ notification.Type, msg string) {
	if s.notificationSvc == nil {
		return
	}
	// Best effort: the ledger mutation must not fail because a message
	// could not be logged or delivered.
	_ = s.notificationSvc.Notify(ctx, to, typ, msg)
}

// GetRecord implements attendance.Service.
func (s *ServiceImpl) GetRecord(ctx context.Context, id attendance.RecordID) (attendance.RecordResponse, error) {
	rec, err := s.RecordRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return attendance.RecordResponse{}, err
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	return attendance.ToResponse(rec), nil
}

// ListRecords implements attendance.Service.
func (s *ServiceImpl) ListRecords(ctx context.Context, filter attendance.ListRecordsFilter) (attendance.ListRecordsResponse, error) {
	records, total, err := s.RecordRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListRecordsResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	resp := attendance.ListRecordsResponse{
		Records: make([]attendance.RecordResponse, 0, len(records)),
		Total:   total,
	}
	for _, rec := range records {
		resp.Records = append(resp.Records, attendance.ToResponse(rec))
	}
	return resp, nil
}
