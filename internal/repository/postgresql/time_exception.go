package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/attendance"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/ref"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/timeexception"
	"github.com/hrmsuite/time-management-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type timeExceptionRepository struct {
	db *database.DB
}

func NewTimeExceptionRepository(db *database.DB) timeexception.Repository {
	return &timeExceptionRepository{db: db}
}

const timeExceptionColumns = `
	id, employee_id, kind, attendance_record_id, assigned_to, status,
	reason, escalation_count, created_at, updated_at
`

// Create implements timeexception.Repository.
func (r *timeExceptionRepository) Create(ctx context.Context, exc timeexception.Exception) (timeexception.Exception, error) {
	q := GetQuerier(ctx, r.db)

	exc.ID = timeexception.ExceptionID(uuid.NewString())

	query := `
		INSERT INTO time_exceptions (
			id, employee_id, kind, attendance_record_id, assigned_to,
			status, reason, escalation_count
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		exc.ID.String(),
		exc.EmployeeID.String(),
		string(exc.Kind),
		exc.AttendanceRecordID.String(),
		exc.AssignedTo.String(),
		string(exc.Status),
		exc.Reason,
		exc.EscalationCount,
	).Scan(&exc.CreatedAt, &exc.UpdatedAt)
	if err != nil {
		return timeexception.Exception{}, fmt.Errorf("failed to create time exception: %w", err)
	}

	return exc, nil
}

// GetByID implements timeexception.Repository.
func (r *timeExceptionRepository) GetByID(ctx context.Context, id timeexception.ExceptionID) (timeexception.Exception, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timeExceptionColumns + ` FROM time_exceptions WHERE id = $1`

	exc, err := scanTimeException(q.QueryRow(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeexception.Exception{}, timeexception.ErrExceptionNotFound
		}
		return timeexception.Exception{}, fmt.Errorf("failed to get time exception: %w", err)
	}

	return exc, nil
}

// Update implements timeexception.Repository.
func (r *timeExceptionRepository) Update(ctx context.Context, exc timeexception.Exception) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_exceptions
		SET status = $2, assigned_to = $3, escalation_count = $4,
		    reason = $5, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		exc.ID.String(),
		string(exc.Status),
		exc.AssignedTo.String(),
		exc.EscalationCount,
		exc.Reason,
	)
	if err != nil {
		return fmt.Errorf("failed to update time exception: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timeexception.ErrExceptionNotFound
	}

	return nil
}

// ListByRecord implements timeexception.Repository.
func (r *timeExceptionRepository) ListByRecord(ctx context.Context, recordID attendance.RecordID) ([]timeexception.Exception, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timeExceptionColumns + `
		FROM time_exceptions
		WHERE attendance_record_id = $1
		ORDER BY created_at ASC`

	rows, err := q.Query(ctx, query, recordID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list exceptions by record: %w", err)
	}
	defer rows.Close()

	var exceptions []timeexception.Exception
	for rows.Next() {
		exc, err := scanTimeException(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time exception: %w", err)
		}
		exceptions = append(exceptions, exc)
	}

	return exceptions, rows.Err()
}

// Delete implements timeexception.Repository.
func (r *timeExceptionRepository) Delete(ctx context.Context, id timeexception.ExceptionID) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM time_exceptions WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete time exception: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timeexception.ErrExceptionNotFound
	}

	return nil
}

// List implements timeexception.Repository.
func (r *timeExceptionRepository) List(ctx context.Context, filter timeexception.ListFilter) ([]timeexception.Exception, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "WHERE 1=1"
	args := []interface{}{}
	idx := 1

	add := func(cond, value string) {
		where += fmt.Sprintf(" AND %s = $%d", cond, idx)
		args = append(args, value)
		idx++
	}

	if filter.EmployeeID != "" {
		add("employee_id", filter.EmployeeID)
	}
	if filter.AssignedTo != "" {
		add("assigned_to", filter.AssignedTo)
	}
	if filter.Status != "" {
		add("status", filter.Status)
	}
	if filter.Kind != "" {
		add("kind", filter.Kind)
	}
	if filter.AttendanceRecordID != "" {
		add("attendance_record_id", filter.AttendanceRecordID)
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM time_exceptions "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count time exceptions: %w", err)
	}

	limit, offset := pagination(filter.Page, filter.Limit)
	query := fmt.Sprintf("SELECT %s FROM time_exceptions %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		timeExceptionColumns, where, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list time exceptions: %w", err)
	}
	defer rows.Close()

	var exceptions []timeexception.Exception
	for rows.Next() {
		exc, err := scanTimeException(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan time exception: %w", err)
		}
		exceptions = append(exceptions, exc)
	}

	return exceptions, total, rows.Err()
}

func scanTimeException(row pgx.Row) (timeexception.Exception, error) {
	var (
		exc        timeexception.Exception
		id         string
		employeeID string
		kind       string
		recordID   string
		assignedTo string
		status     string
	)

	err := row.Scan(
		&id, &employeeID, &kind, &recordID, &assignedTo, &status,
		&exc.Reason, &exc.EscalationCount, &exc.CreatedAt, &exc.UpdatedAt,
	)
	if err != nil {
		return timeexception.Exception{}, err
	}

	exc.ID = timeexception.ExceptionID(id)
	exc.EmployeeID = ref.EmployeeID(employeeID)
	exc.Kind = timeexception.Kind(kind)
	exc.AttendanceRecordID = attendance.RecordID(recordID)
	exc.AssignedTo = ref.EmployeeID(assignedTo)
	exc.Status = timeexception.Status(status)

	return exc, nil
}
