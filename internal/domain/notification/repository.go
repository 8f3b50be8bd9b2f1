package notification

import (
	"context"
)

// Repository defines data access for the notification log. Append-only:
// there is no update or delete.
type Repository interface {
	// Append persists a new log entry and fills in ID and timestamp.
	Append(ctx context.Context, l Log) (Log, error)

	// List retrieves entries matching the filter, newest first.
	List(ctx context.Context, filter ListFilter) ([]Log, int64, error)
}
