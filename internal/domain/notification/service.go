package notification

import (
	"context"

	"github.com/hrmsuite/time-management-backend-go/internal/domain/ref"
)

// Sink accepts (recipient, type, message) triples for delivery beyond the
// log, e.g. email. Delivery is best-effort; a failing sink must never fail
// the lifecycle operation that emitted the notification.
type Sink interface {
	Dispatch(ctx context.Context, to ref.EmployeeID, typ Type, message string) error
}

// Service defines business logic for the notification log.
type Service interface {
	// Notify appends a log entry and hands the triple to the dispatch sink.
	Notify(ctx context.Context, to ref.EmployeeID, typ Type, message string) error

	// ListLogs retrieves log entries with filters.
	ListLogs(ctx context.Context, filter ListFilter) (ListResponse, error)
}
