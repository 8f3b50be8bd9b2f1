package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/ref"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/shift"
	"github.com/hrmsuite/time-management-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type shiftAssignmentRepository struct {
	db *database.DB
}

func NewShiftAssignmentRepository(db *database.DB) shift.Repository {
	return &shiftAssignmentRepository{db: db}
}

const shiftAssignmentColumns = `
	id, employee_id, department_id, position_id, shift_id, schedule_rule_id,
	start_date, end_date, status, created_at, updated_at
`

// Create implements shift.Repository.
func (r *shiftAssignmentRepository) Create(ctx context.Context, a shift.Assignment) (shift.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	a.ID = shift.AssignmentID(uuid.NewString())

	var endDate *time.Time
	if d, ok := a.End.Date(); ok {
		endDate = &d
	}

	query := `
		INSERT INTO shift_assignments (
			id, employee_id, department_id, position_id, shift_id,
			schedule_rule_id, start_date, end_date, status
		) VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), $5, NULLIF($6, ''), $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		a.ID.String(),
		a.Binding.EmployeeID.String(),
		a.Binding.DepartmentID.String(),
		a.Binding.PositionID.String(),
		a.ShiftID.String(),
		a.ScheduleRuleID.String(),
		a.StartDate,
		endDate,
		string(a.Status),
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return shift.Assignment{}, fmt.Errorf("failed to create shift assignment: %w", err)
	}

	return a, nil
}

// GetByID implements shift.Repository.
func (r *shiftAssignmentRepository) GetByID(ctx context.Context, id shift.AssignmentID) (shift.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + shiftAssignmentColumns + ` FROM shift_assignments WHERE id = $1`

	a, err := scanShiftAssignment(q.QueryRow(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Assignment{}, shift.ErrAssignmentNotFound
		}
		return shift.Assignment{}, fmt.Errorf("failed to get shift assignment: %w", err)
	}

	return a, nil
}

// Update implements shift.Repository.
func (r *shiftAssignmentRepository) Update(ctx context.Context, a shift.Assignment) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shift_assignments
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, a.ID.String(), string(a.Status))
	if err != nil {
		return fmt.Errorf("failed to update shift assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrAssignmentNotFound
	}

	return nil
}

// ListExpiringBetween implements shift.Repository.
func (r *shiftAssignmentRepository) ListExpiringBetween(ctx context.Context, from, to time.Time) ([]shift.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + shiftAssignmentColumns + `
		FROM shift_assignments
		WHERE status = 'APPROVED'
		  AND end_date IS NOT NULL
		  AND end_date BETWEEN $1 AND $2
		ORDER BY end_date ASC`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list expiring assignments: %w", err)
	}
	defer rows.Close()

	var assignments []shift.Assignment
	for rows.Next() {
		a, err := scanShiftAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	return assignments, rows.Err()
}

// List implements shift.Repository.
func (r *shiftAssignmentRepository) List(ctx context.Context, filter shift.ListFilter) ([]shift.Assignment, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "WHERE 1=1"
	args := []interface{}{}
	idx := 1

	if filter.EmployeeID != "" {
		where += fmt.Sprintf(" AND employee_id = $%d", idx)
		args = append(args, filter.EmployeeID)
		idx++
	}
	if filter.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", idx)
		args = append(args, filter.Status)
		idx++
	}
	if filter.ShiftID != "" {
		where += fmt.Sprintf(" AND shift_id = $%d", idx)
		args = append(args, filter.ShiftID)
		idx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM shift_assignments "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count shift assignments: %w", err)
	}

	limit, offset := pagination(filter.Page, filter.Limit)
	query := fmt.Sprintf("SELECT %s FROM shift_assignments %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		shiftAssignmentColumns, where, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list shift assignments: %w", err)
	}
	defer rows.Close()

	var assignments []shift.Assignment
	for rows.Next() {
		a, err := scanShiftAssignment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan shift assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	return assignments, total, rows.Err()
}

func scanShiftAssignment(row pgx.Row) (shift.Assignment, error) {
	var (
		a            shift.Assignment
		id           string
		employeeID   *string
		departmentID *string
		positionID   *string
		shiftID      string
		ruleID       *string
		endDate      *time.Time
		status       string
	)

	err := row.Scan(
		&id, &employeeID, &departmentID, &positionID, &shiftID, &ruleID,
		&a.StartDate, &endDate, &status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return shift.Assignment{}, err
	}

	a.ID = shift.AssignmentID(id)
	if employeeID != nil {
		a.Binding.EmployeeID = ref.EmployeeID(*employeeID)
	}
	if departmentID != nil {
		a.Binding.DepartmentID = ref.DepartmentID(*departmentID)
	}
	if positionID != nil {
		a.Binding.PositionID = ref.PositionID(*positionID)
	}
	a.ShiftID = ref.ShiftID(shiftID)
	if ruleID != nil {
		a.ScheduleRuleID = ref.ScheduleRuleID(*ruleID)
	}
	if endDate != nil {
		a.End = shift.Until(*endDate)
	} else {
		a.End = shift.Ongoing()
	}
	a.Status = shift.Status(status)

	return a, nil
}
