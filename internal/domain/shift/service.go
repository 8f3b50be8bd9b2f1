package shift

import (
	"context"
)

// Service defines business logic for shift assignment lifecycle and the
// expiring-shift scan.
type Service interface {
	// CreateAssignment validates binding and date range and stores a
	// PENDING assignment.
	CreateAssignment(ctx context.Context, req CreateAssignmentRequest) (AssignmentResponse, error)

	// Approve moves a PENDING assignment to APPROVED.
	Approve(ctx context.Context, id AssignmentID) (AssignmentResponse, error)

	// Cancel moves a PENDING or APPROVED assignment to CANCELLED.
	Cancel(ctx context.Context, id AssignmentID) (AssignmentResponse, error)

	// MarkExpired moves an APPROVED assignment to EXPIRED; valid only once
	// its end date has passed.
	MarkExpired(ctx context.Context, id AssignmentID) (AssignmentResponse, error)

	// ScanExpiring is a read-only query over APPROVED assignments whose end
	// date falls inside the lookahead window, partitioned into urgency
	// tiers. Safe to invoke concurrently and repeatedly.
	ScanExpiring(ctx context.Context, req ScanExpiringRequest) (ScanResponse, error)

	// NotifyExpiring runs the scan and feeds the findings to the
	// notification dispatch collaborator: one log entry per expiring
	// assignment bound to an employee, plus a per-invocation summary for
	// the configured HR recipient.
	NotifyExpiring(ctx context.Context, req ScanExpiringRequest) (ScanResponse, error)

	// GetAssignment retrieves an assignment by ID.
	GetAssignment(ctx context.Context, id AssignmentID) (AssignmentResponse, error)

	// ListAssignments retrieves assignments with filters.
	ListAssignments(ctx context.Context, filter ListFilter) (ListAssignmentsResponse, error)
}
