package auth

import (
	"time"

	"github.com/hrmsuite/time-management-backend-go/internal/domain/ref"
)

// Role gates access to administrative endpoints.
type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleHRAdmin  Role = "HR_ADMIN"
)

// User is a credentialed account. The employee profile itself is owned by an
// external collaborator; EmployeeID is an opaque reference into it.
type User struct {
	ID             string
	EmployeeNumber string
	EmployeeID     ref.EmployeeID
	FullName       string
	WorkEmail      string
	PasswordHash   string
	Role           Role
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
