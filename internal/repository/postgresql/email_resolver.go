package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/hrmsuite/time-management-backend-go/internal/domain/ref"
	"github.com/hrmsuite/time-management-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// EmployeeEmailResolver resolves an employee reference to the work email on
// its credentialed account.
type EmployeeEmailResolver struct {
	db *database.DB
}

func NewEmployeeEmailResolver(db *database.DB) *EmployeeEmailResolver {
	return &EmployeeEmailResolver{db: db}
}

// EmailFor implements email.Resolver.
func (r *EmployeeEmailResolver) EmailFor(ctx context.Context, id ref.EmployeeID) (string, error) {
	q := GetQuerier(ctx, r.db)

	var address string
	err := q.QueryRow(ctx, `SELECT work_email FROM users WHERE employee_id = $1`, id.String()).Scan(&address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("no account for employee %s", id.String())
		}
		return "", fmt.Errorf("failed to resolve employee email: %w", err)
	}

	return address, nil
}
