package auth

import (
	"context"
)

// UserRepository defines data access for credentialed accounts.
type UserRepository interface {
	// Create persists a new user and fills in ID and timestamps.
	Create(ctx context.Context, u User) (User, error)

	// GetByEmployeeNumber retrieves a user by login identifier.
	GetByEmployeeNumber(ctx context.Context, employeeNumber string) (User, error)

	// GetByID retrieves a user by its identifier.
	GetByID(ctx context.Context, id string) (User, error)
}
