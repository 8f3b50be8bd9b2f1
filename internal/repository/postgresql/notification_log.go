package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/notification"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/ref"
	"github.com/hrmsuite/time-management-backend-go/internal/pkg/database"
)

type notificationLogRepository struct {
	db *database.DB
}

func NewNotificationLogRepository(db *database.DB) notification.Repository {
	return &notificationLogRepository{db: db}
}

// Append implements notification.Repository. The table has no update or
// delete path anywhere in this package.
func (r *notificationLogRepository) Append(ctx context.Context, l notification.Log) (notification.Log, error) {
	q := GetQuerier(ctx, r.db)

	l.ID = uuid.NewString()

	query := `
		INSERT INTO notification_logs (id, recipient, type, message)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		l.ID,
		l.To.String(),
		string(l.Type),
		l.Message,
	).Scan(&l.CreatedAt)
	if err != nil {
		return notification.Log{}, fmt.Errorf("failed to append notification log: %w", err)
	}

	return l, nil
}

// List implements notification.Repository.
func (r *notificationLogRepository) List(ctx context.Context, filter notification.ListFilter) ([]notification.Log, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "WHERE 1=1"
	args := []interface{}{}
	idx := 1

	if filter.Recipient != "" {
		where += fmt.Sprintf(" AND recipient = $%d", idx)
		args = append(args, filter.Recipient)
		idx++
	}
	if filter.Type != "" {
		where += fmt.Sprintf(" AND type = $%d", idx)
		args = append(args, filter.Type)
		idx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM notification_logs "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count notification logs: %w", err)
	}

	limit, offset := pagination(filter.Page, filter.Limit)
	query := fmt.Sprintf(
		"SELECT id, recipient, type, message, created_at FROM notification_logs %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notification logs: %w", err)
	}
	defer rows.Close()

	var logs []notification.Log
	for rows.Next() {
		var (
			l         notification.Log
			recipient string
			typ       string
		)
		if err := rows.Scan(&l.ID, &recipient, &typ, &l.Message, &l.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan notification log: %w", err)
		}
		l.To = ref.EmployeeID(recipient)
		l.Type = notification.Type(typ)
		logs = append(logs, l)
	}

	return logs, total, rows.Err()
}
