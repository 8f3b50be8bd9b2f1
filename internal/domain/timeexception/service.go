package timeexception

import (
	"context"
)

// Service defines business logic for the time exception workflow.
type Service interface {
	// Transition moves an exception to the target status. It is the only
	// exposed mutation; a move not permitted by the current status fails
	// with *TransitionError and performs no change.
	Transition(ctx context.Context, id ExceptionID, req TransitionRequest) (ExceptionResponse, error)

	// CreateManual raises a MANUAL_ADJUSTMENT (or other) exception attached
	// to an existing attendance record.
	CreateManual(ctx context.Context, req CreateManualRequest) (ExceptionResponse, error)

	// GetException retrieves a single exception by ID.
	GetException(ctx context.Context, id ExceptionID) (ExceptionResponse, error)

	// ListExceptions retrieves exceptions with filters.
	ListExceptions(ctx context.Context, filter ListFilter) (ListResponse, error)
}
