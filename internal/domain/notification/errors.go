package notification

import "errors"

// Notification domain errors
var (
	ErrLogNotFound = errors.New("notification log entry not found")
)
