package services

import (
	"context"
	"time"

	"github.com/devmitra/auth_backend/internal/core/domain"
	"github.com/devmitra/auth_backend/internal/dto"
)

// TokenSvcFacade defines the interface for token issuance and verification.
// Access and refresh tokens use distinct secrets and lifetimes; verifying a
// token with the wrong kind fails.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	ValidateAccessToken(ctx context.Context, tokenString string) (*domain.AccessTokenClaims, error)
	ValidateRefreshToken(ctx context.Context, tokenString string) (*domain.RefreshTokenClaims, error)
}

// AuthSvcFacade defines the user-facing authentication operations.
type AuthSvcFacade interface {
	// Register creates a new user. No tokens are issued; registration does
	// not log the user in.
	Register(ctx context.Context, req dto.SignupRequest) (*domain.User, error)

	// Login verifies credentials and issues a fresh access/refresh token
	// pair, overwriting any previously stored pair.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)

	// Refresh mints a new access token from a valid refresh token. The
	// stored refresh token is left unchanged.
	Refresh(ctx context.Context, refreshToken string) (string, error)

	// Logout clears the stored refresh token for the user. The access token
	// is left in place and stays valid until its own expiry.
	Logout(ctx context.Context, userID int64) error

	// GetUserByID returns the persisted user, for the protected profile route.
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)
}
