package holiday

import (
	"time"

	"github.com/hrmsuite/time-management-backend-go/internal/pkg/validator"
)

type CreateHolidayRequest struct {
	Type      string  `json:"type"`
	StartDate string  `json:"start_date"`
	EndDate   *string `json:"end_date,omitempty"`
	Name      string  `json:"name"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if !Type(r.Type).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be NATIONAL, ORGANIZATIONAL or WEEKLY_REST",
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

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type HolidayResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	StartDate string    `json:"start_date"`
	EndDate   *string   `json:"end_date,omitempty"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

type ListHolidaysResponse struct {
	Holidays []HolidayResponse `json:"holidays"`
}

// ToResponse maps a Holiday to its API representation.
func ToResponse(h Holiday) HolidayResponse {
	resp := HolidayResponse{
		ID:        h.ID.String(),
		Type:      string(h.Type),
		StartDate: h.StartDate.Format("2006-01-02"),
		Name:      h.Name,
		Active:    h.Active,
		CreatedAt: h.CreatedAt,
	}
	if h.EndDate != nil {
		s := h.EndDate.Format("2006-01-02")
		resp.EndDate = &s
	}
	return resp
}
