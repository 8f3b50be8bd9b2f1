package correction

import (
	"time"

	"github.com/hrmsuite/time-management-backend-go/internal/pkg/validator"
)

type SubmitRequest struct {
	AttendanceRecordID string  `json:"attendance_record_id"`
	EmployeeID         string  `json:"employee_id"`
	Reason             *string `json:"reason,omitempty"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AttendanceRecordID) {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_record_id",
			Message: "attendance_record_id is required",
		})
	}

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Decision is the terminal outcome a reviewer hands down.
type Decision string

const (
	DecisionApproved Decision = "APPROVED"
	DecisionRejected Decision = "REJECTED"
)

type ResolveRequest struct {
	Decision string `json:"decision"`
}

func (r *ResolveRequest) Validate() error {
	var errs validator.ValidationErrors

	if d := Decision(r.Decision); d != DecisionApproved && d != DecisionRejected {
		errs = append(errs, validator.ValidationError{
			Field:   "decision",
			Message: "decision must be APPROVED or REJECTED",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListFilter struct {
	EmployeeID         string
	AttendanceRecordID string
	Status             string
	Page               int
	Limit              int
}

type RequestResponse struct {
	ID                 string    `json:"id"`
	EmployeeID         string    `json:"employee_id"`
	AttendanceRecordID string    `json:"attendance_record_id"`
	Reason             *string   `json:"reason,omitempty"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type ListResponse struct {
	Requests []RequestResponse `json:"requests"`
	Total    int64             `json:"total"`
}

// ToResponse maps a Request to its API representation.
func ToResponse(req Request) RequestResponse {
	return RequestResponse{
		ID:                 req.ID.String(),
		EmployeeID:         req.EmployeeID.String(),
		AttendanceRecordID: req.AttendanceRecord.String(),
		Reason:             req.Reason,
		Status:             string(req.Status),
		CreatedAt:          req.CreatedAt,
		UpdatedAt:          req.UpdatedAt,
	}
}
