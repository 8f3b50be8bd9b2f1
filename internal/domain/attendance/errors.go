package attendance

import "errors"

// Attendance domain errors
var (
	ErrRecordNotFound   = errors.New("attendance record not found")
	ErrPunchOutOfOrder  = errors.New("punch timestamp precedes the last recorded punch")
	ErrInvalidPunchType = errors.New("punch type must be IN or OUT")
	ErrFutureTimestamp  = errors.New("punch timestamp is in the future")
)
