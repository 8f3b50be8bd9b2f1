package correction

import (
	"context"
)

// Service defines business logic for the correction request workflow and the
// payroll finalisation guard.
type Service interface {
	// Submit opens a dispute against an attendance record and clears the
	// record's payroll finalisation flag for as long as any request on it
	// stays unresolved.
	Submit(ctx context.Context, req SubmitRequest) (RequestResponse, error)

	// Review moves a SUBMITTED request into IN_REVIEW.
	Review(ctx context.Context, id RequestID) (RequestResponse, error)

	// Escalate moves an IN_REVIEW request to ESCALATED.
	Escalate(ctx context.Context, id RequestID) (RequestResponse, error)

	// Resolve applies the reviewer's terminal decision. The target record is
	// re-finalised only when no other open request still blocks it.
	Resolve(ctx context.Context, id RequestID, req ResolveRequest) (RequestResponse, error)

	// GetRequest retrieves a single request by ID.
	GetRequest(ctx context.Context, id RequestID) (RequestResponse, error)

	// ListRequests retrieves requests with filters.
	ListRequests(ctx context.Context, filter ListFilter) (ListResponse, error)
}
