package attendance

import (
	"context"
)

// Service defines business logic for the attendance ledger.
type Service interface {
	// RecordPunch appends a punch to the employee's record for the punch
	// day, creating the record on the first punch, and recomputes totals
	// and missed-punch flags.
	RecordPunch(ctx context.Context, req RecordPunchRequest) (RecordResponse, error)

	// Recompute re-runs the derived computation on an existing record.
	// Recomputation is idempotent on an unchanged punch sequence.
	Recompute(ctx context.Context, id RecordID) (RecordResponse, error)

	// GetRecord retrieves a single record by ID.
	GetRecord(ctx context.Context, id RecordID) (RecordResponse, error)

	// ListRecords retrieves records with filters (admin/manager).
	ListRecords(ctx context.Context, filter ListRecordsFilter) (ListRecordsResponse, error)
}
