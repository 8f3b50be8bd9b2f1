package shift

import (
	"time"

	"github.com/hrmsuite/time-management-backend-go/internal/pkg/validator"
)

type CreateAssignmentRequest struct {
	EmployeeID     *string `json:"employee_id,omitempty"`
	DepartmentID   *string `json:"department_id,omitempty"`
	PositionID     *string `json:"position_id,omitempty"`
	ShiftID        string  `json:"shift_id"`
	ScheduleRuleID *string `json:"schedule_rule_id,omitempty"`
	StartDate      string  `json:"start_date"`
	EndDate        *string `json:"end_date,omitempty"`
}

func (r *CreateAssignmentRequest) Validate() error {
	var errs validator.ValidationErrors

	bindings := 0
	for _, id := range []*string{r.EmployeeID, r.DepartmentID, r.PositionID} {
		if id != nil && !validator.IsEmpty(*id) {
			bindings++
		}
	}
	if bindings != 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "binding",
			Message: "exactly one of employee_id, department_id or position_id must be set",
		})
	}

	if validator.IsEmpty(r.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id is required",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date (YYYY-MM-DD)",
		})
	}

	if r.EndDate != nil {
		end, endOK := validator.IsValidDate(*r.EndDate)
		if !endOK {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be a valid date (YYYY-MM-DD)",
			})
		} else if startOK && end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not precede start_date",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ScanExpiringRequest struct {
	DaysBeforeExpiry int `json:"days_before_expiry"`
}

// Validate rejects a lookahead window outside [1, 30]; out-of-range values
// are an error, not a clamp.
func (r *ScanExpiringRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.DaysBeforeExpiry < 1 || r.DaysBeforeExpiry > 30 {
		errs = append(errs, validator.ValidationError{
			Field:   "days_before_expiry",
			Message: "days_before_expiry must be between 1 and 30",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListFilter struct {
	EmployeeID string
	Status     string
	ShiftID    string
	Page       int
	Limit      int
}

type AssignmentResponse struct {
	ID             string    `json:"id"`
	EmployeeID     *string   `json:"employee_id,omitempty"`
	DepartmentID   *string   `json:"department_id,omitempty"`
	PositionID     *string   `json:"position_id,omitempty"`
	ShiftID        string    `json:"shift_id"`
	ScheduleRuleID *string   `json:"schedule_rule_id,omitempty"`
	StartDate      string    `json:"start_date"`
	EndDate        *string   `json:"end_date,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type ListAssignmentsResponse struct {
	Assignments []AssignmentResponse `json:"assignments"`
	Total       int64                `json:"total"`
}

// ExpiringAssignment is one scan hit with its urgency classification.
type ExpiringAssignment struct {
	Assignment    AssignmentResponse `json:"assignment"`
	DaysRemaining int                `json:"days_remaining"`
	Urgency       Urgency            `json:"urgency"`
}

// ScanSummary is the per-tier count of scan hits.
type ScanSummary struct {
	HighUrgency   int `json:"high_urgency"`
	MediumUrgency int `json:"medium_urgency"`
	LowUrgency    int `json:"low_urgency"`
}

type ScanResponse struct {
	Count       int                  `json:"count"`
	Summary     ScanSummary          `json:"summary"`
	Assignments []ExpiringAssignment `json:"assignments"`
}

// ToResponse maps an Assignment to its API representation.
func ToResponse(a Assignment) AssignmentResponse {
	resp := AssignmentResponse{
		ID:        a.ID.String(),
		ShiftID:   a.ShiftID.String(),
		StartDate: a.StartDate.Format("2006-01-02"),
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}

	if !a.Binding.EmployeeID.IsZero() {
		s := a.Binding.EmployeeID.String()
		resp.EmployeeID = &s
	}
	if !a.Binding.DepartmentID.IsZero() {
		s := a.Binding.DepartmentID.String()
		resp.DepartmentID = &s
	}
	if !a.Binding.PositionID.IsZero() {
		s := a.Binding.PositionID.String()
		resp.PositionID = &s
	}
	if !a.ScheduleRuleID.IsZero() {
		s := a.ScheduleRuleID.String()
		resp.ScheduleRuleID = &s
	}
	if end, ok := a.End.Date(); ok {
		s := end.Format("2006-01-02")
		resp.EndDate = &s
	}

	return resp
}
