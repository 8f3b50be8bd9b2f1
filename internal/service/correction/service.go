package correction

import (
	"context"
	"fmt"

	"github.com/hrmsuite/time-management-backend-go/internal/domain/attendance"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/correction"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/notification"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/ref"
	"github.com/hrmsuite/time-management-backend-go/internal/pkg/database"
)

type ServiceImpl struct {
	tx database.TxRunner
	correction.Repository
	recordRepo      attendance.RecordRepository
	notificationSvc notification.Service
}

func NewCorrectionService(
	tx database.TxRunner,
	repo correction.Repository,
	recordRepo attendance.RecordRepository,
	notificationSvc notification.Service,
) correction.Service {
	return &ServiceImpl{
		tx:              tx,
		Repository:      repo,
		recordRepo:      recordRepo,
		notificationSvc: notificationSvc,
	}
}

// Submit implements correction.Service. Creating the request and clearing
// the target record's finalisation flag happen in one transaction, so
// payroll can never observe a finalised record with an open dispute.
func (s *ServiceImpl) Submit(ctx context.Context, req correction.SubmitRequest) (correction.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return correction.RequestResponse{}, err
	}

	recordID := attendance.RecordID(req.AttendanceRecordID)

	var result correction.Request
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		rec, err := s.recordRepo.GetByID(txCtx, recordID)
		if err != nil {
			return err
		}

		result, err = s.Repository.Create(txCtx, correction.New(
			ref.EmployeeID(req.EmployeeID),
			rec.ID,
			req.Reason,
		))
		if err != nil {
			return fmt.Errorf("failed to create correction request: %w", err)
		}

		// Idempotent: a record already under dispute stays unfinalised, no
		// visible change.
		if rec.FinalisedForPayroll {
			rec.FinalisedForPayroll = false
			if err := s.recordRepo.Update(txCtx, rec); err != nil {
				return fmt.Errorf("failed to block record finalisation: %w", err)
			}
		}

		if s.notificationSvc != nil {
			_ = s.notificationSvc.Notify(txCtx, rec.EmployeeID, notification.TypeCorrectionSubmitted,
				fmt.Sprintf("Correction request submitted for attendance record %s", rec.ID))
		}

		return nil
	})
	if err != nil {
		return correction.RequestResponse{}, err
	}

	return correction.ToResponse(result), nil
}

// Review implements correction.Service.
func (s *ServiceImpl) Review(ctx context.Context, id correction.RequestID) (correction.RequestResponse, error) {
	return s.transition(ctx, id, correction.StatusInReview)
}

// Escalate implements correction.Service.
func (s *ServiceImpl) Escalate(ctx context.Context, id correction.RequestID) (correction.RequestResponse, error) {
	return s.transition(ctx, id, correction.StatusEscalated)
}

func (s *ServiceImpl) transition(ctx context.Context, id correction.RequestID, target correction.Status) (correction.RequestResponse, error) {
	var result correction.Request
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		req, err := s.Repository.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if !correction.CanTransition(req.Status, target) {
			return &correction.TransitionError{Current: req.Status, Attempted: target}
		}

		req.Status = target
		if err := s.Repository.Update(txCtx, req); err != nil {
			return fmt.Errorf("failed to update correction request: %w", err)
		}

		result = req
		return nil
	})
	if err != nil {
		return correction.RequestResponse{}, err
	}

	return correction.ToResponse(result), nil
}

// Resolve implements correction.Service. The decision and the conditional
// re-finalisation of the target record are applied atomically; the record
// reverts to finalised only when the last open dispute on it resolves.
func (s *ServiceImpl) Resolve(ctx context.Context, id correction.RequestID, req correction.ResolveRequest) (correction.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return correction.RequestResponse{}, err
	}
	target := correction.Status(req.Decision)

	var result correction.Request
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		cr, err := s.Repository.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if !correction.CanTransition(cr.Status, target) {
			return &correction.TransitionError{Current: cr.Status, Attempted: target}
		}

		cr.Status = target
		if err := s.Repository.Update(txCtx, cr); err != nil {
			return fmt.Errorf("failed to update correction request: %w", err)
		}

		remaining, err := s.Repository.CountOpenByRecord(txCtx, cr.AttendanceRecord, cr.ID)
		if err != nil {
			return fmt.Errorf("failed to count open correction requests: %w", err)
		}

		if remaining == 0 {
			rec, err := s.recordRepo.GetByID(txCtx, cr.AttendanceRecord)
			if err != nil {
				return err
			}
			rec.FinalisedForPayroll = true
			if err := s.recordRepo.Update(txCtx, rec); err != nil {
				return fmt.Errorf("failed to restore record finalisation: %w", err)
			}
		}

		if s.notificationSvc != nil {
			_ = s.notificationSvc.Notify(txCtx, cr.EmployeeID, notification.TypeCorrectionResolved,
				fmt.Sprintf("Correction request %s %s", cr.ID, cr.Status))
		}

		result = cr
		return nil
	})
	if err != nil {
		return correction.RequestResponse{}, err
	}

	return correction.ToResponse(result), nil
}

// GetRequest implements correction.Service.
func (s *ServiceImpl) GetRequest(ctx context.Context, id correction.RequestID) (correction.RequestResponse, error) {
	req, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return correction.RequestResponse{}, err
	}
	return correction.ToResponse(req), nil
}

// ListRequests implements correction.Service.
func (s *ServiceImpl) ListRequests(ctx context.Context, filter correction.ListFilter) (correction.ListResponse, error) {
	requests, total, err := s.Repository.List(ctx, filter)
	if err != nil {
		return correction.ListResponse{}, fmt.Errorf("failed to list correction requests: %w", err)
	}

	resp := correction.ListResponse{
		Requests: make([]correction.RequestResponse, 0, len(requests)),
		Total:    total,
	}
	for _, req := range requests {
		resp.Requests = append(resp.Requests, correction.ToResponse(req))
	}
	return resp, nil
}
