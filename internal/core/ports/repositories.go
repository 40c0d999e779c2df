package ports

import (
	"context"

	"github.com/devmitra/auth_backend/internal/core/domain"
)

// Note: Context is included for potential cancellation/timeouts.

// UserRepository defines the persistence operations for Users and their
// stored token values.
type UserRepository interface {
	// CreateUser inserts a new user row and returns it with the assigned ID.
	// Returns apperrors.ErrDuplicate if email or mobile already exists.
	CreateUser(ctx context.Context, user domain.User) (*domain.User, error)

	FindUserByID(ctx context.Context, userID int64) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUserByIDAndAccessToken returns the user only if accessToken equals
	// the access_token column for that row. Used by the auth guard: a token
	// that has been superseded no longer matches and the lookup misses.
	FindUserByIDAndAccessToken(ctx context.Context, userID int64, accessToken string) (*domain.User, error)

	// FindUserByIDAndRefreshToken is the refresh-flow analogue of the above.
	FindUserByIDAndRefreshToken(ctx context.Context, userID int64, refreshToken string) (*domain.User, error)

	// UpdateTokens overwrites both stored token values, invalidating any
	// previously issued pair (single active session per user).
	UpdateTokens(ctx context.Context, userID int64, accessToken, refreshToken string) error

	// UpdateAccessToken overwrites only the stored access token, leaving the
	// refresh token unchanged.
	UpdateAccessToken(ctx context.Context, userID int64, accessToken string) error

	// ClearRefreshToken sets the stored refresh token to NULL.
	ClearRefreshToken(ctx context.Context, userID int64) error
}
