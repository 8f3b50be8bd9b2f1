package timeexception

import (
	"context"
	"fmt"

	"github.com/hrmsuite/time-management-backend-go/internal/domain/attendance"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/notification"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/ref"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/timeexception"
	"github.com/hrmsuite/time-management-backend-go/internal/pkg/database"
)

type ServiceImpl struct {
	tx database.TxRunner
	timeexception.Repository
	recordRepo      attendance.RecordRepository
	attendanceSvc   attendance.Service
	notificationSvc notification.Service
}

func NewExceptionService(
	tx database.TxRunner,
	repo timeexception.Repository,
	recordRepo attendance.RecordRepository,
	attendanceSvc attendance.Service,
	notificationSvc notification.Service,
) timeexception.Service {
	return &ServiceImpl{
		tx:              tx,
		Repository:      repo,
		recordRepo:      recordRepo,
		attendanceSvc:   attendanceSvc,
		notificationSvc: notificationSvc,
	}
}

// Transition implements timeexception.Service. The transition and any
// cascading recomputation on the owning record are applied as one atomic
// unit; a rejected transition performs no mutation at all.
func (s *ServiceImpl) Transition(ctx context.Context, id timeexception.ExceptionID, req timeexception.TransitionRequest) (timeexception.ExceptionResponse, error) {
	if err := req.Validate(); err != nil {
		return timeexception.ExceptionResponse{}, err
	}
	target := timeexception.Status(req.TargetStatus)

	var result timeexception.Exception
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		exc, err := s.Repository.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if !timeexception.CanTransition(exc.Status, target) {
			return &timeexception.TransitionError{Current: exc.Status, Attempted: target}
		}

		if target == timeexception.StatusEscalated {
			if exc.EscalationCount >= timeexception.MaxEscalations {
				return timeexception.ErrEscalationExceeded
			}
			exc.EscalationCount++
		}

		// ESCALATED -> PENDING re-queues to a higher-tier assignee.
		if exc.Status == timeexception.StatusEscalated && target == timeexception.StatusPending && req.AssignTo != nil {
			exc.AssignedTo = ref.EmployeeID(*req.AssignTo)
		}

		exc.Status = target
		if err := s.Repository.Update(txCtx, exc); err != nil {
			return fmt.Errorf("failed to update time exception: %w", err)
		}

		if target == timeexception.StatusEscalated && s.notificationSvc != nil {
			_ = s.notificationSvc.Notify(txCtx, exc.AssignedTo, notification.TypeExceptionEscalated,
				fmt.Sprintf("Time exception %s escalated (%s)", exc.ID, exc.Kind))
		}

		// A resolved correction to worked time invalidates the owning
		// record's derived fields.
		if (target == timeexception.StatusApproved || target == timeexception.StatusResolved) && exc.Kind.AmendsWorkedTime() {
			if _, err := s.attendanceSvc.Recompute(txCtx, exc.AttendanceRecordID); err != nil {
				return fmt.Errorf("failed to recompute owning attendance record: %w", err)
			}
		}

		result = exc
		return nil
	})
	if err != nil {
		return timeexception.ExceptionResponse{}, err
	}

	return timeexception.ToResponse(result), nil
}

// CreateManual implements timeexception.Service.
func (s *ServiceImpl) CreateManual(ctx context.Context, req timeexception.CreateManualRequest) (timeexception.ExceptionResponse, error) {
	if err := req.Validate(); err != nil {
		return timeexception.ExceptionResponse{}, err
	}

	recordID := attendance.RecordID(req.AttendanceRecordID)

	var result timeexception.Exception
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		rec, err := s.recordRepo.GetByID(txCtx, recordID)
		if err != nil {
			return err
		}

		exc, err := s.Repository.Create(txCtx, timeexception.New(
			ref.EmployeeID(req.EmployeeID),
			timeexception.Kind(req.Kind),
			rec.ID,
			ref.EmployeeID(req.AssignedTo),
			req.Reason,
		))
		if err != nil {
			return fmt.Errorf("failed to create time exception: %w", err)
		}

		rec.ExceptionIDs = append(rec.ExceptionIDs, exc.ID.String())
		if err := s.recordRepo.Update(txCtx, rec); err != nil {
			return fmt.Errorf("failed to attach exception to record: %w", err)
		}

		if s.notificationSvc != nil {
			_ = s.notificationSvc.Notify(txCtx, exc.AssignedTo, notification.TypeExceptionRaised,
				fmt.Sprintf("Time exception %s raised for employee %s", exc.Kind, exc.EmployeeID))
		}

		result = exc
		return nil
	})
	if err != nil {
		return timeexception.ExceptionResponse{}, err
	}

	return timeexception.ToResponse(result), nil
}

// GetException implements timeexception.Service.
func (s *ServiceImpl) GetException(ctx context.Context, id timeexception.ExceptionID) (timeexception.ExceptionResponse, error) {
	exc, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return timeexception.ExceptionResponse{}, err
	}
	return timeexception.ToResponse(exc), nil
}

// ListExceptions implements timeexception.Service.
func (s *ServiceImpl) ListExceptions(ctx context.Context, filter timeexception.ListFilter) (timeexception.ListResponse, error) {
	exceptions, total, err := s.Repository.List(ctx, filter)
	if err != nil {
		return timeexception.ListResponse{}, fmt.Errorf("failed to list time exceptions: %w", err)
	}

	resp := timeexception.ListResponse{
		Exceptions: make([]timeexception.ExceptionResponse, 0, len(exceptions)),
		Total:      total,
	}
	for _, exc := range exceptions {
		resp.Exceptions = append(resp.Exceptions, timeexception.ToResponse(exc))
	}
	return resp, nil
}
