package response

import (
	"errors"
	"net/http"

	"github.com/hrmsuite/time-management-backend-go/internal/domain/attendance"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/auth"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/correction"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/holiday"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/shift"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/timeexception"
	"github.com/hrmsuite/time-management-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Rejected workflow transitions carry the current and attempted status so
	// the caller can see what the record would have accepted.
	var excTransition *timeexception.TransitionError
	if errors.As(err, &excTransition) {
		ConflictWithDetails(w, "Invalid state transition", map[string]string{
			"current":   string(excTransition.Current),
			"attempted": string(excTransition.Attempted),
		})
		return
	}
	var corrTransition *correction.TransitionError
	if errors.As(err, &corrTransition) {
		ConflictWithDetails(w, "Invalid state transition", map[string]string{
			"current":   string(corrTransition.Current),
			"attempted": string(corrTransition.Attempted),
		})
		return
	}
	var shiftTransition *shift.TransitionError
	if errors.As(err, &shiftTransition) {
		ConflictWithDetails(w, "Invalid state transition", map[string]string{
			"current":   string(shiftTransition.Current),
			"attempted": string(shiftTransition.Attempted),
		})
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid credentials")
	case errors.Is(err, auth.ErrTokenInvalid):
		Unauthorized(w, "Token is invalid or expired")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, auth.ErrEmployeeNumberExists):
		Conflict(w, "Employee number already registered")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrPunchOutOfOrder):
		Conflict(w, "Punch timestamp precedes the last recorded punch")
	case errors.Is(err, attendance.ErrInvalidPunchType):
		BadRequest(w, "Punch type must be IN or OUT", nil)
	case errors.Is(err, attendance.ErrFutureTimestamp):
		BadRequest(w, "Punch timestamp is in the future", nil)

	// Time exception domain errors
	case errors.Is(err, timeexception.ErrExceptionNotFound):
		NotFound(w, "Time exception not found")
	case errors.Is(err, timeexception.ErrEscalationExceeded):
		Conflict(w, "Exception has reached the escalation limit")

	// Correction request domain errors
	case errors.Is(err, correction.ErrRequestNotFound):
		NotFound(w, "Correction request not found")

	// Shift assignment domain errors
	case errors.Is(err, shift.ErrAssignmentNotFound):
		NotFound(w, "Shift assignment not found")
	case errors.Is(err, shift.ErrNotYetExpired):
		Conflict(w, "Assignment end date has not passed yet")
	case errors.Is(err, shift.ErrEndBeforeStart):
		BadRequest(w, "End date must not precede start date", nil)
	case errors.Is(err, shift.ErrAmbiguousBinding):
		BadRequest(w, "Exactly one of employee, department or position must be set", nil)

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
