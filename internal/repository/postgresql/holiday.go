package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/holiday"
	"github.com/hrmsuite/time-management-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.Repository {
	return &holidayRepository{db: db}
}

const holidayColumns = `
	id, type, start_date, end_date, name, active, created_at, updated_at
`

// Create implements holiday.Repository.
func (r *holidayRepository) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	h.ID = holiday.HolidayID(uuid.NewString())

	query := `
		INSERT INTO holidays (id, type, start_date, end_date, name, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		h.ID.String(),
		string(h.Type),
		h.StartDate,
		h.EndDate,
		h.Name,
		h.Active,
	).Scan(&h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return holiday.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	return h, nil
}

// ListActiveOn implements holiday.Repository.
func (r *holidayRepository) ListActiveOn(ctx context.Context, day time.Time) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + holidayColumns + `
		FROM holidays
		WHERE active = TRUE
		  AND start_date <= $1
		  AND COALESCE(end_date, start_date) >= $1
		ORDER BY start_date ASC`

	rows, err := q.Query(ctx, query, day.UTC().Truncate(24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("failed to list active holidays: %w", err)
	}
	defer rows.Close()

	return collectHolidays(rows)
}

// List implements holiday.Repository.
func (r *holidayRepository) List(ctx context.Context) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + holidayColumns + ` FROM holidays ORDER BY start_date ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	return collectHolidays(rows)
}

func collectHolidays(rows pgx.Rows) ([]holiday.Holiday, error) {
	var holidays []holiday.Holiday
	for rows.Next() {
		var (
			h   holiday.Holiday
			id  string
			typ string
		)
		err := rows.Scan(&id, &typ, &h.StartDate, &h.EndDate, &h.Name, &h.Active, &h.CreatedAt, &h.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		h.ID = holiday.HolidayID(id)
		h.Type = holiday.Type(typ)
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}
