package timeexception

import (
	"time"

	"github.com/hrmsuite/time-management-backend-go/internal/pkg/validator"
)

type TransitionRequest struct {
	TargetStatus string `json:"target_status"`
	ActorID      string `json:"actor_id"`

	// AssignTo re-queues the exception to a different assignee; only
	// honoured on ESCALATED -> PENDING.
	AssignTo *string `json:"assign_to,omitempty"`
}

func (r *TransitionRequest) Validate() error {
	var errs validator.ValidationErrors

	if !Status(r.TargetStatus).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "target_status",
			Message: "target_status must be one of OPEN, PENDING, APPROVED, REJECTED, ESCALATED, RESOLVED",
		})
	}

	if validator.IsEmpty(r.ActorID) {
		errs = append(errs, validator.ValidationError{
			Field:   "actor_id",
			Message: "actor_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CreateManualRequest struct {
	EmployeeID         string  `json:"employee_id"`
	Kind               string  `json:"kind"`
	AttendanceRecordID string  `json:"attendance_record_id"`
	AssignedTo         string  `json:"assigned_to"`
	Reason             *string `json:"reason,omitempty"`
}

func (r *CreateManualRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !Kind(r.Kind).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind is not a recognised exception kind",
		})
	}

	if validator.IsEmpty(r.AttendanceRecordID) {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_record_id",
			Message: "attendance_record_id is required",
		})
	}

	if validator.IsEmpty(r.AssignedTo) {
		errs = append(errs, validator.ValidationError{
			Field:   "assigned_to",
			Message: "assigned_to is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListFilter struct {
	EmployeeID         string
	AssignedTo         string
	Status             string
	Kind               string
	AttendanceRecordID string
	Page               int
	Limit              int
}

type ExceptionResponse struct {
	ID                 string    `json:"id"`
	EmployeeID         string    `json:"employee_id"`
	Kind               string    `json:"kind"`
	AttendanceRecordID string    `json:"attendance_record_id"`
	AssignedTo         string    `json:"assigned_to"`
	Status             string    `json:"status"`
	Reason             *string   `json:"reason,omitempty"`
	EscalationCount    int       `json:"escalation_count"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type ListResponse struct {
	Exceptions []ExceptionResponse `json:"exceptions"`
	Total      int64               `json:"total"`
}

// ToResponse maps an Exception to its API representation.
func ToResponse(exc Exception) ExceptionResponse {
	return ExceptionResponse{
		ID:                 exc.ID.String(),
		EmployeeID:         exc.EmployeeID.String(),
		Kind:               string(exc.Kind),
		AttendanceRecordID: exc.AttendanceRecordID.String(),
		AssignedTo:         exc.AssignedTo.String(),
		Status:             string(exc.Status),
		Reason:             exc.Reason,
		EscalationCount:    exc.EscalationCount,
		CreatedAt:          exc.CreatedAt,
		UpdatedAt:          exc.UpdatedAt,
	}
}
