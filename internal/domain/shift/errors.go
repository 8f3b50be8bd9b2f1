package shift

import (
	"errors"
	"fmt"
)

// Shift assignment domain errors
var (
	ErrAssignmentNotFound = errors.New("shift assignment not found")
	ErrEndBeforeStart     = errors.New("end date must not precede start date")
	ErrNotYetExpired      = errors.New("assignment end date has not passed yet")
	ErrAmbiguousBinding   = errors.New("exactly one of employee, department or position must be set")
)

// TransitionError reports an attempted lifecycle move from a status that
// does not permit it. The assignment is left unchanged.
type TransitionError struct {
	Current   Status
	Attempted Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid state transition: %s -> %s", e.Current, e.Attempted)
}
