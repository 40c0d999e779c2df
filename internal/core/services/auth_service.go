package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/devmitra/auth_backend/internal/apperrors"
	"github.com/devmitra/auth_backend/internal/core/domain"
	"github.com/devmitra/auth_backend/internal/core/ports"
	portssvc "github.com/devmitra/auth_backend/internal/core/ports/services"
	"github.com/devmitra/auth_backend/internal/dto"
	"github.com/devmitra/auth_backend/internal/utils"
)

// authService implements AuthSvcFacade by composing the user repository and
// the token service.
type authService struct {
	userRepo ports.UserRepository
	tokenSvc portssvc.TokenSvcFacade
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo ports.UserRepository, tokenSvc portssvc.TokenSvcFacade) portssvc.AuthSvcFacade {
	return &authService{
		userRepo: userRepo,
		tokenSvc: tokenSvc,
	}
}

// Register creates a new user with a bcrypt-hashed password. Registration
// does not issue tokens; the user logs in separately.
func (s *authService) Register(ctx context.Context, req dto.SignupRequest) (*domain.User, error) {
	if req.Name == "" || req.Email == "" || req.Mobile == "" || req.Password == "" {
		return nil, fmt.Errorf("all fields are required: %w", apperrors.ErrValidation)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.User{
		Name:         req.Name,
		Email:        req.Email,
		Mobile:       req.Mobile,
		PasswordHash: passwordHash,
	}

	created, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		// ErrDuplicate passes through for the handler to map to 409.
		return nil, err
	}
	return created, nil
}

// Login verifies credentials and issues a fresh token pair. A lookup miss
// and a password mismatch produce the same error so the response does not
// reveal which check failed.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("email and password required: %w", apperrors.ErrValidation)
	}

	user, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}

	accessToken, _, err := s.tokenSvc.GenerateAccessToken(ctx, user)
	if err != nil {
		return nil, err
	}
	refreshToken, _, err := s.tokenSvc.GenerateRefreshToken(ctx, user)
	if err != nil {
		return nil, err
	}

	// Persisting the pair overwrites any previously stored tokens, which
	// invalidates them at the guard even before cryptographic expiry.
	if err := s.userRepo.UpdateTokens(ctx, user.UserID, accessToken, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to persist tokens: %w", err)
	}

	return &dto.LoginResponse{
		Message:      "Login successful",
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh mints a new access token from a valid refresh token. Every
// verification failure collapses to ErrForbidden so the response does not
// distinguish expired from malformed from mismatched.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokenSvc.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return "", apperrors.ErrForbidden
	}

	user, err := s.userRepo.FindUserByIDAndRefreshToken(ctx, claims.UserID, refreshToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.ErrForbidden
		}
		return "", fmt.Errorf("failed to look up user for refresh: %w", err)
	}

	accessToken, _, err := s.tokenSvc.GenerateAccessToken(ctx, user)
	if err != nil {
		return "", err
	}

	// Only the access token is replaced; the refresh token stays live until
	// logout or its own expiry.
	if err := s.userRepo.UpdateAccessToken(ctx, user.UserID, accessToken); err != nil {
		return "", fmt.Errorf("failed to persist access token: %w", err)
	}

	return accessToken, nil
}

// Logout clears the stored refresh token. The access token is deliberately
// left on record and stays usable until its short expiry.
func (s *authService) Logout(ctx context.Context, userID int64) error {
	if err := s.userRepo.ClearRefreshToken(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}

// GetUserByID returns the persisted user.
func (s *authService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}
