package domain

import "time"

// User represents a registered user of the application in the domain.
// PasswordHash and the stored token values never leave the service layer.
type User struct {
	UserID       int64  `json:"userID"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Mobile       string `json:"mobile"`
	PasswordHash string `json:"-"`

	// Most recently issued token of each kind, or nil when none is live.
	// A presented token is only honoured while it equals the stored value.
	AccessToken  *string `json:"-"`
	RefreshToken *string `json:"-"`

	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}
