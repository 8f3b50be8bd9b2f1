package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hrmsuite/time-management-backend-go/internal/domain/notification"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/ref"
)

type ServiceImpl struct {
	notification.Repository
	sink notification.Sink
}

// NewNotificationService wires the append-only log with an optional
// dispatch sink. A nil sink means log-only operation.
func NewNotificationService(repo notification.Repository, sink notification.Sink) notification.Service {
	return &ServiceImpl{
		Repository: repo,
		sink:       sink,
	}
}

// Notify implements notification.Service. The log append is the operation
// of record; sink delivery is best-effort and only logged on failure.
func (s *ServiceImpl) Notify(ctx context.Context, to ref.EmployeeID, typ notification.Type, message string) error {
	entry, err := s.Repository.Append(ctx, notification.Log{
		To:      to,
		Type:    typ,
		Message: message,
	})
	if err != nil {
		return fmt.Errorf("failed to append notification log: %w", err)
	}

	if s.sink != nil {
		if err := s.sink.Dispatch(ctx, to, typ, message); err != nil {
			slog.Warn("Notification dispatch failed", "id", entry.ID, "recipient", to.String(), "error", err)
		}
	}

	return nil
}

// ListLogs implements notification.Service.
func (s *ServiceImpl) ListLogs(ctx context.Context, filter notification.ListFilter) (notification.ListResponse, error) {
	logs, total, err := s.Repository.List(ctx, filter)
	if err != nil {
		return notification.ListResponse{}, fmt.Errorf("failed to list notification logs: %w", err)
	}

	resp := notification.ListResponse{
		Logs:  make([]notification.LogResponse, 0, len(logs)),
		Total: total,
	}
	for _, l := range logs {
		resp.Logs = append(resp.Logs, notification.ToResponse(l))
	}
	return resp, nil
}
