package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/attendance"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/correction"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/ref"
	"github.com/hrmsuite/time-management-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type correctionRequestRepository struct {
	db *database.DB
}

func NewCorrectionRequestRepository(db *database.DB) correction.Repository {
	return &correctionRequestRepository{db: db}
}

const correctionRequestColumns = `
	id, employee_id, attendance_record_id, reason, status, created_at, updated_at
`

// Create implements correction.Repository.
func (r *correctionRequestRepository) Create(ctx context.Context, req correction.Request) (correction.Request, error) {
	q := GetQuerier(ctx, r.db)

	req.ID = correction.RequestID(uuid.NewString())

	query := `
		INSERT INTO correction_requests (id, employee_id, attendance_record_id, reason, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.ID.String(),
		req.EmployeeID.String(),
		req.AttendanceRecord.String(),
		req.Reason,
		string(req.Status),
	).Scan(&req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return correction.Request{}, fmt.Errorf("failed to create correction request: %w", err)
	}

	return req, nil
}

// GetByID implements correction.Repository.
func (r *correctionRequestRepository) GetByID(ctx context.Context, id correction.RequestID) (correction.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + correctionRequestColumns + ` FROM correction_requests WHERE id = $1`

	req, err := scanCorrectionRequest(q.QueryRow(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return correction.Request{}, correction.ErrRequestNotFound
		}
		return correction.Request{}, fmt.Errorf("failed to get correction request: %w", err)
	}

	return req, nil
}

// Update implements correction.Repository.
func (r *correctionRequestRepository) Update(ctx context.Context, req correction.Request) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE correction_requests
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, req.ID.String(), string(req.Status))
	if err != nil {
		return fmt.Errorf("failed to update correction request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return correction.ErrRequestNotFound
	}

	return nil
}

// CountOpenByRecord implements correction.Repository.
func (r *correctionRequestRepository) CountOpenByRecord(ctx context.Context, recordID attendance.RecordID, exclude correction.RequestID) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM correction_requests
		WHERE attendance_record_id = $1
		  AND status NOT IN ('APPROVED', 'REJECTED')
	`
	args := []interface{}{recordID.String()}

	if !exclude.IsZero() {
		query += " AND id != $2"
		args = append(args, exclude.String())
	}

	var count int
	if err := q.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count open correction requests: %w", err)
	}

	return count, nil
}

// List implements correction.Repository.
func (r *correctionRequestRepository) List(ctx context.Context, filter correction.ListFilter) ([]correction.Request, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "WHERE 1=1"
	args := []interface{}{}
	idx := 1

	if filter.EmployeeID != "" {
		where += fmt.Sprintf(" AND employee_id = $%d", idx)
		args = append(args, filter.EmployeeID)
		idx++
	}
	if filter.AttendanceRecordID != "" {
		where += fmt.Sprintf(" AND attendance_record_id = $%d", idx)
		args = append(args, filter.AttendanceRecordID)
		idx++
	}
	if filter.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", idx)
		args = append(args, filter.Status)
		idx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM correction_requests "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count correction requests: %w", err)
	}

	limit, offset := pagination(filter.Page, filter.Limit)
	query := fmt.Sprintf("SELECT %s FROM correction_requests %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		correctionRequestColumns, where, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list correction requests: %w", err)
	}
	defer rows.Close()

	var requests []correction.Request
	for rows.Next() {
		req, err := scanCorrectionRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan correction request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, total, rows.Err()
}

func scanCorrectionRequest(row pgx.Row) (correction.Request, error) {
	var (
		req        correction.Request
		id         string
		employeeID string
		recordID   string
		status     string
	)

	err := row.Scan(&id, &employeeID, &recordID, &req.Reason, &status, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return correction.Request{}, err
	}

	req.ID = correction.RequestID(id)
	req.EmployeeID = ref.EmployeeID(employeeID)
	req.AttendanceRecord = attendance.RecordID(recordID)
	req.Status = correction.Status(status)

	return req, nil
}
