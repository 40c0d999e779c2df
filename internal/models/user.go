package models

import (
	"database/sql"
	"time"
)

// User represents a row of the users table.
// access_token and refresh_token are nullable: NULL means no live token of
// that kind is on record for the user.
type User struct {
	UserID       int64          `db:"user_id"`
	Name         string         `db:"name"`
	Email        string         `db:"email"`
	Mobile       string         `db:"mobile"`
	PasswordHash string         `db:"password_hash"`
	AccessToken  sql.NullString `db:"access_token"`
	RefreshToken sql.NullString `db:"refresh_token"`

	CreatedAt     time.Time `db:"created_at"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
}
