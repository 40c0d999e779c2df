package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/devmitra/auth_backend/internal/core/domain"
	portssvc "github.com/devmitra/auth_backend/internal/core/ports/services"
	"github.com/devmitra/auth_backend/internal/platform/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// tokenService implements TokenSvcFacade on top of golang-jwt. Access and
// refresh tokens are signed with distinct secrets and additionally carry a
// token_use claim, so a token of one kind can never verify as the other.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

// GenerateAccessToken creates a new signed access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	now := time.Now()
	expiryTime := now.Add(s.cfg.JWTExpiryDuration)

	claims := domain.AccessTokenClaims{
		UserID:   user.UserID,
		Email:    user.Email,
		TokenUse: domain.TokenUseAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.JWTIssuer,
			ExpiresAt: jwt.NewNumericDate(expiryTime),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			// Unique per issuance so two tokens minted within the same
			// second still differ, keeping the stored-value overwrite
			// observable at the guard.
			ID: uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, expiryTime, nil
}

// GenerateRefreshToken creates a new signed refresh token for the given user.
func (s *tokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	now := time.Now()
	expiryTime := now.Add(s.cfg.RefreshTokenExpiryDuration)

	claims := domain.RefreshTokenClaims{
		UserID:   user.UserID,
		TokenUse: domain.TokenUseRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.JWTIssuer,
			ExpiresAt: jwt.NewNumericDate(expiryTime),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTRefreshSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return signed, expiryTime, nil
}

// ValidateAccessToken parses and validates an access token string.
func (s *tokenService) ValidateAccessToken(ctx context.Context, tokenString string) (*domain.AccessTokenClaims, error) {
	claims := &domain.AccessTokenClaims{}
	if err := s.parseInto(tokenString, claims, s.cfg.JWTSecret); err != nil {
		return nil, err
	}
	if claims.TokenUse != domain.TokenUseAccess {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// ValidateRefreshToken parses and validates a refresh token string.
func (s *tokenService) ValidateRefreshToken(ctx context.Context, tokenString string) (*domain.RefreshTokenClaims, error) {
	claims := &domain.RefreshTokenClaims{}
	if err := s.parseInto(tokenString, claims, s.cfg.JWTRefreshSecret); err != nil {
		return nil, err
	}
	if claims.TokenUse != domain.TokenUseRefresh {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// parseInto parses tokenString into claims, validating signature and the
// standard time-based claims.
func (s *tokenService) parseInto(tokenString string, claims jwt.Claims, secret string) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Don't forget to validate the alg is what you expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return err // includes token expired, signature invalid, malformed, etc.
	}
	if !token.Valid {
		return jwt.ErrTokenSignatureInvalid
	}
	return nil
}
