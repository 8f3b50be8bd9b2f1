package auth

import "errors"

// Auth domain errors
var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUserNotFound         = errors.New("user not found")
	ErrEmployeeNumberExists = errors.New("employee number already registered")
	ErrTokenInvalid         = errors.New("token is invalid or expired")
)
