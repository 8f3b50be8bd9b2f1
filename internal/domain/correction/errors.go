package correction

import (
	"errors"
	"fmt"
)

// Correction request domain errors
var (
	ErrRequestNotFound = errors.New("correction request not found")
)

// TransitionError reports an attempted workflow move from a status that does
// not permit it. The request is left unchanged.
type TransitionError struct {
	Current   Status
	Attempted Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid state transition: %s -> %s", e.Current, e.Attempted)
}
