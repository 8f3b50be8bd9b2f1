package shift

import (
	"context"
	"fmt"
	"time"

	"github.com/hrmsuite/time-management-backend-go/internal/domain/notification"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/ref"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/shift"
	"github.com/hrmsuite/time-management-backend-go/internal/pkg/database"
	"github.com/hrmsuite/time-management-backend-go/internal/pkg/validator"
)

// Config carries policy knobs for the shift assignment lifecycle.
type Config struct {
	// HRRecipient receives the per-invocation expiring-shift summary.
	HRRecipient ref.EmployeeID
}

type ServiceImpl struct {
	tx database.TxRunner
	shift.Repository
	notificationSvc notification.Service
	cfg             Config

	// now is swapped in tests to pin the scan window.
	now func() time.Time
}

func NewShiftService(
	tx database.TxRunner,
	repo shift.Repository,
	notificationSvc notification.Service,
	cfg Config,
) shift.Service {
	return &ServiceImpl{
		tx:              tx,
		Repository:      repo,
		notificationSvc: notificationSvc,
		cfg:             cfg,
		now:             time.Now,
	}
}

// CreateAssignment implements shift.Service.
func (s *ServiceImpl) CreateAssignment(ctx context.Context, req shift.CreateAssignmentRequest) (shift.AssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.AssignmentResponse{}, err
	}

	start, _ := validator.IsValidDate(req.StartDate)
	end := shift.Ongoing()
	if req.EndDate != nil {
		d, _ := validator.IsValidDate(*req.EndDate)
		end = shift.Until(d)
	}

	binding := shift.Binding{}
	if req.EmployeeID != nil {
		binding.EmployeeID = ref.EmployeeID(*req.EmployeeID)
	}
	if req.DepartmentID != nil {
		binding.DepartmentID = ref.DepartmentID(*req.DepartmentID)
	}
	if req.PositionID != nil {
		binding.PositionID = ref.PositionID(*req.PositionID)
	}
	if !binding.IsValid() {
		return shift.AssignmentResponse{}, shift.ErrAmbiguousBinding
	}

	ruleID := ref.ScheduleRuleID("")
	if req.ScheduleRuleID != nil {
		ruleID = ref.ScheduleRuleID(*req.ScheduleRuleID)
	}

	created, err := s.Repository.Create(ctx, shift.New(binding, ref.ShiftID(req.ShiftID), ruleID, start, end))
	if err != nil {
		return shift.AssignmentResponse{}, fmt.Errorf("failed to create shift assignment: %w", err)
	}

	return shift.ToResponse(created), nil
}

// Approve implements shift.Service.
func (s *ServiceImpl) Approve(ctx context.Context, id shift.AssignmentID) (shift.AssignmentResponse, error) {
	return s.transition(ctx, id, shift.StatusApproved)
}

// Cancel implements shift.Service.
func (s *ServiceImpl) Cancel(ctx context.Context, id shift.AssignmentID) (shift.AssignmentResponse, error) {
	return s.transition(ctx, id, shift.StatusCancelled)
}

// MarkExpired implements shift.Service. EXPIRED is only valid once the end
// date has passed; an open-ended assignment can never expire.
func (s *ServiceImpl) MarkExpired(ctx context.Context, id shift.AssignmentID) (shift.AssignmentResponse, error) {
	var result shift.Assignment
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		a, err := s.Repository.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if !shift.CanTransition(a.Status, shift.StatusExpired) {
			return &shift.TransitionError{Current: a.Status, Attempted: shift.StatusExpired}
		}

		end, ok := a.End.Date()
		if !ok || !end.Before(today(s.now())) {
			return shift.ErrNotYetExpired
		}

		a.Status = shift.StatusExpired
		if err := s.Repository.Update(txCtx, a); err != nil {
			return fmt.Errorf("failed to update shift assignment: %w", err)
		}

		result = a
		return nil
	})
	if err != nil {
		return shift.AssignmentResponse{}, err
	}

	return shift.ToResponse(result), nil
}

func (s *ServiceImpl) transition(ctx context.Context, id shift.AssignmentID, target shift.Status) (shift.AssignmentResponse, error) {
	var result shift.Assignment
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		a, err := s.Repository.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if !shift.CanTransition(a.Status, target) {
			return &shift.TransitionError{Current: a.Status, Attempted: target}
		}

		a.Status = target
		if err := s.Repository.Update(txCtx, a); err != nil {
			return fmt.Errorf("failed to update shift assignment: %w", err)
		}

		result = a
		return nil
	})
	if err != nil {
		return shift.AssignmentResponse{}, err
	}

	return shift.ToResponse(result), nil
}

// ScanExpiring implements shift.Service. Read-only; concurrent invocations
// never conflict.
func (s *ServiceImpl) ScanExpiring(ctx context.Context, req shift.ScanExpiringRequest) (shift.ScanResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ScanResponse{}, err
	}

	from := today(s.now())
	to := from.AddDate(0, 0, req.DaysBeforeExpiry)

	assignments, err := s.Repository.ListExpiringBetween(ctx, from, to)
	if err != nil {
		return shift.ScanResponse{}, fmt.Errorf("failed to scan expiring assignments: %w", err)
	}

	resp := shift.ScanResponse{
		Assignments: make([]shift.ExpiringAssignment, 0, len(assignments)),
	}
	for _, a := range assignments {
		end, ok := a.End.Date()
		if !ok {
			continue
		}
		days := int(end.Sub(from).Hours() / 24)
		urgency := shift.UrgencyFor(days)

		switch urgency {
		case shift.UrgencyHigh:
			resp.Summary.HighUrgency++
		case shift.UrgencyMedium:
			resp.Summary.MediumUrgency++
		case shift.UrgencyLow:
			resp.Summary.LowUrgency++
		}

		resp.Assignments = append(resp.Assignments, shift.ExpiringAssignment{
			Assignment:    shift.ToResponse(a),
			DaysRemaining: days,
			Urgency:       urgency,
		})
	}
	resp.Count = len(resp.Assignments)

	return resp, nil
}

// NotifyExpiring implements shift.Service.
func (s *ServiceImpl) NotifyExpiring(ctx context.Context, req shift.ScanExpiringRequest) (shift.ScanResponse, error) {
	result, err := s.ScanExpiring(ctx, req)
	if err != nil {
		return shift.ScanResponse{}, err
	}

	if s.notificationSvc == nil {
		return result, nil
	}

	for _, hit := range result.Assignments {
		if hit.Assignment.EmployeeID == nil {
			continue
		}
		_ = s.notificationSvc.Notify(ctx, ref.EmployeeID(*hit.Assignment.EmployeeID), notification.TypeShiftExpiring,
			fmt.Sprintf("Shift assignment %s expires in %d day(s)", hit.Assignment.ID, hit.DaysRemaining))
	}

	if !s.cfg.HRRecipient.IsZero() {
		_ = s.notificationSvc.Notify(ctx, s.cfg.HRRecipient, notification.TypeShiftExpirySummary,
			fmt.Sprintf("%d shift assignment(s) expiring within %d day(s): %d high, %d medium, %d low urgency",
				result.Count, req.DaysBeforeExpiry,
				result.Summary.HighUrgency, result.Summary.MediumUrgency, result.Summary.LowUrgency))
	}

	return result, nil
}

// GetAssignment implements shift.Service.
func (s *ServiceImpl) GetAssignment(ctx context.Context, id shift.AssignmentID) (shift.AssignmentResponse, error) {
	a, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return shift.AssignmentResponse{}, err
	}
	return shift.ToResponse(a), nil
}

// ListAssignments implements shift.Service.
func (s *ServiceImpl) ListAssignments(ctx context.Context, filter shift.ListFilter) (shift.ListAssignmentsResponse, error) {
	assignments, total, err := s.Repository.List(ctx, filter)
	if err != nil {
		return shift.ListAssignmentsResponse{}, fmt.Errorf("failed to list shift assignments: %w", err)
	}

	resp := shift.ListAssignmentsResponse{
		Assignments: make([]shift.AssignmentResponse, 0, len(assignments)),
		Total:       total,
	}
	for _, a := range assignments {
		resp.Assignments = append(resp.Assignments, shift.ToResponse(a))
	}
	return resp, nil
}

func today(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
