package attendance

import (
	"time"

	"github.com/hrmsuite/time-management-backend-go/internal/pkg/validator"
)

type RecordPunchRequest struct {
	EmployeeID string `json:"employee_id"`
	PunchType  string `json:"punch_type"`
	Timestamp  string `json:"timestamp"`
}

func (r *RecordPunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !PunchType(r.PunchType).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "punch_type",
			Message: "punch_type must be IN or OUT",
		})
	}

	if _, ok := validator.IsValidDateTime(r.Timestamp); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "timestamp",
			Message: "timestamp must be a valid ISO8601 datetime",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListRecordsFilter struct {
	EmployeeID string
	DateFrom   *time.Time
	DateTo     *time.Time
	Page       int
	Limit      int
}

type PunchResponse struct {
	Type string `json:"type"`
	Time string `json:"time"`
}

type RecordResponse struct {
	ID                  string          `json:"id"`
	EmployeeID          string          `json:"employee_id"`
	Date                string          `json:"date"`
	Punches             []PunchResponse `json:"punches"`
	TotalWorkMinutes    int             `json:"total_work_minutes"`
	HasMissedPunch      bool            `json:"has_missed_punch"`
	ExceptionIDs        []string        `json:"exception_ids"`
	FinalisedForPayroll bool            `json:"finalised_for_payroll"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

type ListRecordsResponse struct {
	Records []RecordResponse `json:"records"`
	Total   int64            `json:"total"`
}

// ToResponse maps a Record to its API representation.
func ToResponse(rec Record) RecordResponse {
	punches := make([]PunchResponse, 0, len(rec.Punches))
	for _, p := range rec.Punches {
		punches = append(punches, PunchResponse{
			Type: string(p.Type),
			Time: p.Time.Format(time.RFC3339),
		})
	}

	return RecordResponse{
		ID:                  rec.ID.String(),
		EmployeeID:          rec.EmployeeID.String(),
		Date:                rec.Date.Format("2006-01-02"),
		Punches:             punches,
		TotalWorkMinutes:    rec.TotalWorkMinutes,
		HasMissedPunch:      rec.HasMissedPunch,
		ExceptionIDs:        rec.ExceptionIDs,
		FinalisedForPayroll: rec.FinalisedForPayroll,
		CreatedAt:           rec.CreatedAt,
		UpdatedAt:           rec.UpdatedAt,
	}
}
