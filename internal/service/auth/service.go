package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/hrmsuite/time-management-backend-go/internal/domain/auth"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/ref"
	"github.com/hrmsuite/time-management-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type ServiceImpl struct {
	userRepo auth.UserRepository
	jwtSvc   jwt.Service
}

func NewAuthService(userRepo auth.UserRepository, jwtSvc jwt.Service) auth.Service {
	return &ServiceImpl{
		userRepo: userRepo,
		jwtSvc:   jwtSvc,
	}
}

// Login implements auth.Service. A missing user and a wrong password are
// indistinguishable to the caller.
func (s *ServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	user, err := s.userRepo.GetByEmployeeNumber(ctx, req.EmployeeNumber)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// Register implements auth.Service.
func (s *ServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	role := auth.RoleEmployee
	if req.Role != "" {
		role = auth.Role(req.Role)
	}

	user, err := s.userRepo.Create(ctx, auth.User{
		EmployeeNumber: req.EmployeeNumber,
		EmployeeID:     ref.EmployeeID(req.EmployeeID),
		FullName:       req.FullName,
		WorkEmail:      req.WorkEmail,
		PasswordHash:   string(hash),
		Role:           role,
	})
	if err != nil {
		if errors.Is(err, auth.ErrEmployeeNumberExists) {
			return auth.UserResponse{}, err
		}
		return auth.UserResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	return auth.ToUserResponse(user), nil
}

// Refresh implements auth.Service.
func (s *ServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.LoginResponse, error) {
	userID, err := s.jwtSvc.ParseRefreshToken(refreshToken)
	if err != nil {
		return auth.LoginResponse{}, auth.ErrTokenInvalid
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrTokenInvalid
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to look up user: %w", err)
	}

	return s.issueTokens(user)
}

func (s *ServiceImpl) issueTokens(user auth.User) (auth.LoginResponse, error) {
	accessToken, accessExp, err := s.jwtSvc.GenerateAccessToken(user.ID, user.EmployeeNumber, user.EmployeeID.String(), user.Role)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExp, err := s.jwtSvc.GenerateRefreshToken(user.ID)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return auth.LoginResponse{
		AccessToken:           accessToken,
		AccessTokenExpiresIn:  accessExp,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: refreshExp,
		User:                  auth.ToUserResponse(user),
	}, nil
}
