package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/auth"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/ref"
	"github.com/hrmsuite/time-management-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) auth.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `
	id, employee_number, employee_id, full_name, work_email, password_hash,
	role, created_at, updated_at
`

// Create implements auth.UserRepository.
func (r *userRepository) Create(ctx context.Context, u auth.User) (auth.User, error) {
	q := GetQuerier(ctx, r.db)

	u.ID = uuid.NewString()

	query := `
		INSERT INTO users (id, employee_number, employee_id, full_name, work_email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		u.ID,
		u.EmployeeNumber,
		u.EmployeeID.String(),
		u.FullName,
		u.WorkEmail,
		u.PasswordHash,
		string(u.Role),
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return auth.User{}, auth.ErrEmployeeNumberExists
		}
		return auth.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return u, nil
}

// GetByEmployeeNumber implements auth.UserRepository.
func (r *userRepository) GetByEmployeeNumber(ctx context.Context, employeeNumber string) (auth.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE employee_number = $1`

	return r.scanUser(q.QueryRow(ctx, query, employeeNumber))
}

// GetByID implements auth.UserRepository.
func (r *userRepository) GetByID(ctx context.Context, id string) (auth.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	return r.scanUser(q.QueryRow(ctx, query, id))
}

func (r *userRepository) scanUser(row pgx.Row) (auth.User, error) {
	var (
		u          auth.User
		employeeID string
		role       string
	)

	err := row.Scan(
		&u.ID, &u.EmployeeNumber, &employeeID, &u.FullName, &u.WorkEmail,
		&u.PasswordHash, &role, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.User{}, auth.ErrUserNotFound
		}
		return auth.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	u.EmployeeID = ref.EmployeeID(employeeID)
	u.Role = auth.Role(role)

	return u, nil
}
