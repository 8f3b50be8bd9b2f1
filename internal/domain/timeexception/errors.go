package timeexception

import (
	"errors"
	"fmt"
)

// Time exception domain errors
var (
	ErrExceptionNotFound  = errors.New("time exception not found")
	ErrEscalationExceeded = errors.New("exception has reached the escalation limit")
)

// TransitionError reports an attempted workflow move from a status that does
// not permit it. The exception is left unchanged.
type TransitionError struct {
	Current   Status
	Attempted Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid state transition: %s -> %s", e.Current, e.Attempted)
}
