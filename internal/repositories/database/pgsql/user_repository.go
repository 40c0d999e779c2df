package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/devmitra/auth_backend/internal/apperrors"
	"github.com/devmitra/auth_backend/internal/core/domain"
	"github.com/devmitra/auth_backend/internal/core/ports"
	"github.com/devmitra/auth_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) ports.UserRepository {
	return &PgxUserRepository{db: db}
}

// Ensure PgxUserRepository implements ports.UserRepository
var _ ports.UserRepository = (*PgxUserRepository)(nil)

// Helper to convert models.User to domain.User
func toDomainUser(m models.User) domain.User {
	d := domain.User{
		UserID:        m.UserID,
		Name:          m.Name,
		Email:         m.Email,
		Mobile:        m.Mobile,
		PasswordHash:  m.PasswordHash,
		CreatedAt:     m.CreatedAt,
		LastUpdatedAt: m.LastUpdatedAt,
	}
	if m.AccessToken.Valid {
		d.AccessToken = &m.AccessToken.String
	}
	if m.RefreshToken.Valid {
		d.RefreshToken = &m.RefreshToken.String
	}
	return d
}

const userColumns = `user_id, name, email, mobile, password_hash, access_token, refresh_token, created_at, last_updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Name,
		&m.Email,
		&m.Mobile,
		&m.PasswordHash,
		&m.AccessToken,
		&m.RefreshToken,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxUserRepository) CreateUser(ctx context.Context, user domain.User) (*domain.User, error) {
	query := `
        INSERT INTO users (name, email, mobile, password_hash, created_at, last_updated_at)
        VALUES ($1, $2, $3, $4, NOW(), NOW())
        RETURNING ` + userColumns + `;
    `
	m, err := scanUser(r.db.QueryRow(ctx, query,
		user.Name,
		user.Email,
		user.Mobile,
		user.PasswordHash,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return nil, apperrors.ErrDuplicate
			}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	domainUser := toDomainUser(*m)
	return &domainUser, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	m, err := scanUser(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %d: %w", userID, err)
	}

	domainUser := toDomainUser(*m)
	return &domainUser, nil
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1;`
	m, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	domainUser := toDomainUser(*m)
	return &domainUser, nil
}

func (r *PgxUserRepository) FindUserByIDAndAccessToken(ctx context.Context, userID int64, accessToken string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1 AND access_token = $2;`
	m, err := scanUser(r.db.QueryRow(ctx, query, userID, accessToken))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID and access token: %w", err)
	}

	domainUser := toDomainUser(*m)
	return &domainUser, nil
}

func (r *PgxUserRepository) FindUserByIDAndRefreshToken(ctx context.Context, userID int64, refreshToken string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1 AND refresh_token = $2;`
	m, err := scanUser(r.db.QueryRow(ctx, query, userID, refreshToken))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID and refresh token: %w", err)
	}

	domainUser := toDomainUser(*m)
	return &domainUser, nil
}

func (r *PgxUserRepository) UpdateTokens(ctx context.Context, userID int64, accessToken, refreshToken string) error {
	query := `
        UPDATE users
        SET access_token = $2, refresh_token = $3, last_updated_at = NOW()
        WHERE user_id = $1;
    `
	tag, err := r.db.Exec(ctx, query, userID, accessToken, refreshToken)
	if err != nil {
		return fmt.Errorf("failed to update tokens for user %d: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) UpdateAccessToken(ctx context.Context, userID int64, accessToken string) error {
	query := `
        UPDATE users
        SET access_token = $2, last_updated_at = NOW()
        WHERE user_id = $1;
    `
	tag, err := r.db.Exec(ctx, query, userID, accessToken)
	if err != nil {
		return fmt.Errorf("failed to update access token for user %d: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) ClearRefreshToken(ctx context.Context, userID int64) error {
	query := `
        UPDATE users
        SET refresh_token = NULL, last_updated_at = NOW()
        WHERE user_id = $1;
    `
	tag, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to clear refresh token for user %d: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
