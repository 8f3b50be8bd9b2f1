package auth

import (
	"context"
)

// Service defines the thin authentication surface: credential lookup,
// password comparison and token issuance. The token format itself is an
// opaque credential from the caller's perspective.
type Service interface {
	// Login verifies employee number and password and issues tokens.
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)

	// Register creates a credentialed account; a duplicate employee number
	// is a conflict.
	Register(ctx context.Context, req RegisterRequest) (UserResponse, error)

	// Refresh exchanges a valid refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (LoginResponse, error)
}
