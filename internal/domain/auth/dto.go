package auth

import (
	"github.com/hrmsuite/time-management-backend-go/internal/pkg/validator"
)

type LoginRequest struct {
	EmployeeNumber string `json:"employee_number"`
	Password       string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_number",
			Message: "employee_number is required",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RegisterRequest struct {
	EmployeeNumber string `json:"employee_number"`
	EmployeeID     string `json:"employee_id"`
	FullName       string `json:"full_name"`
	WorkEmail      string `json:"work_email"`
	Password       string `json:"password"`
	Role           string `json:"role"`
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_number",
			Message: "employee_number is required",
		})
	}

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}

	if !validator.IsValidEmail(r.WorkEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "work_email",
			Message: "work_email must be a valid email address",
		})
	}

	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	if r.Role != "" && r.Role != string(RoleEmployee) && r.Role != string(RoleHRAdmin) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be EMPLOYEE or HR_ADMIN",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UserResponse struct {
	ID             string `json:"id"`
	EmployeeNumber string `json:"employee_number"`
	EmployeeID     string `json:"employee_id,omitempty"`
	FullName       string `json:"full_name"`
	WorkEmail      string `json:"work_email"`
	Role           string `json:"role"`
}

type LoginResponse struct {
	AccessToken           string       `json:"access_token"`
	AccessTokenExpiresIn  int64        `json:"access_token_expires_in"`
	RefreshToken          string       `json:"refresh_token"`
	RefreshTokenExpiresIn int64        `json:"refresh_token_expires_in"`
	User                  UserResponse `json:"user"`
}

// ToUserResponse maps a User to its API representation.
func ToUserResponse(u User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		EmployeeNumber: u.EmployeeNumber,
		EmployeeID:     u.EmployeeID.String(),
		FullName:       u.FullName,
		WorkEmail:      u.WorkEmail,
		Role:           string(u.Role),
	}
}
