package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/attendance"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/ref"
	"github.com/hrmsuite/time-management-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.RecordRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, employee_id, date, punches, total_work_minutes, has_missed_punch,
	exception_ids, finalised_for_payroll, created_at, updated_at
`

// Create implements attendance.RecordRepository.
func (r *attendanceRepository) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	punches, err := json.Marshal(rec.Punches)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to encode punches: %w", err)
	}

	rec.ID = attendance.RecordID(uuid.NewString())

	query := `
		INSERT INTO attendance_records (
			id, employee_id, date, punches, total_work_minutes,
			has_missed_punch, exception_ids, finalised_for_payroll
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		rec.ID.String(),
		rec.EmployeeID.String(),
		rec.Date,
		punches,
		rec.TotalWorkMinutes,
		rec.HasMissedPunch,
		rec.ExceptionIDs,
		rec.FinalisedForPayroll,
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return rec, nil
}

// GetByID implements attendance.RecordRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id attendance.RecordID) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance_records WHERE id = $1`

	rec, err := scanAttendance(q.QueryRow(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return rec, nil
}

// GetByEmployeeAndDate implements attendance.RecordRepository.
func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID ref.EmployeeID, day time.Time) (*attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1 AND date = $2
		LIMIT 1`

	rec, err := scanAttendance(q.QueryRow(ctx, query, employeeID.String(), attendance.DayOf(day)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance record by employee and date: %w", err)
	}

	return &rec, nil
}

// Update implements attendance.RecordRepository.
func (r *attendanceRepository) Update(ctx context.Context, rec attendance.Record) error {
	q := GetQuerier(ctx, r.db)

	punches, err := json.Marshal(rec.Punches)
	if err != nil {
		return fmt.Errorf("failed to encode punches: %w", err)
	}

	query := `
		UPDATE attendance_records
		SET punches = $2, total_work_minutes = $3, has_missed_punch = $4,
		    exception_ids = $5, finalised_for_payroll = $6, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		rec.ID.String(),
		punches,
		rec.TotalWorkMinutes,
		rec.HasMissedPunch,
		rec.ExceptionIDs,
		rec.FinalisedForPayroll,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}

// List implements attendance.RecordRepository.
func (r *attendanceRepository) List(ctx context.Context, filter attendance.ListRecordsFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "WHERE 1=1"
	args := []interface{}{}
	idx := 1

	if filter.EmployeeID != "" {
		where += fmt.Sprintf(" AND employee_id = $%d", idx)
		args = append(args, filter.EmployeeID)
		idx++
	}
	if filter.DateFrom != nil {
		where += fmt.Sprintf(" AND date >= $%d", idx)
		args = append(args, *filter.DateFrom)
		idx++
	}
	if filter.DateTo != nil {
		where += fmt.Sprintf(" AND date <= $%d", idx)
		args = append(args, *filter.DateTo)
		idx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM attendance_records "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	limit, offset := pagination(filter.Page, filter.Limit)
	query := fmt.Sprintf("SELECT %s FROM attendance_records %s ORDER BY date DESC LIMIT $%d OFFSET $%d",
		attendanceColumns, where, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, total, rows.Err()
}

func scanAttendance(row pgx.Row) (attendance.Record, error) {
	var (
		rec        attendance.Record
		id         string
		employeeID string
		punches    []byte
	)

	err := row.Scan(
		&id, &employeeID, &rec.Date, &punches, &rec.TotalWorkMinutes,
		&rec.HasMissedPunch, &rec.ExceptionIDs, &rec.FinalisedForPayroll,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return attendance.Record{}, err
	}

	rec.ID = attendance.RecordID(id)
	rec.EmployeeID = ref.EmployeeID(employeeID)
	if err := json.Unmarshal(punches, &rec.Punches); err != nil {
		return attendance.Record{}, fmt.Errorf("failed to decode punches: %w", err)
	}

	return rec, nil
}

func pagination(page, limit int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if page <= 0 {
		page = 1
	}
	return limit, (page - 1) * limit
}
