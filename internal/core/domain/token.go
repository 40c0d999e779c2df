package domain

import "github.com/golang-jwt/jwt/v5"

// Token use values embedded in the claims so an access token can never be
// accepted where a refresh token is required, or vice versa, even if the
// signing secrets were ever misconfigured to be equal.
const (
	TokenUseAccess  = "access"
	TokenUseRefresh = "refresh"
)

// AccessTokenClaims is the payload carried by access tokens.
type AccessTokenClaims struct {
	UserID   int64  `json:"id"`
	Email    string `json:"email"`
	TokenUse string `json:"token_use"`
	jwt.RegisteredClaims
}

// RefreshTokenClaims is the payload carried by refresh tokens.
// Refresh tokens identify the user only; email is not included.
type RefreshTokenClaims struct {
	UserID   int64  `json:"id"`
	TokenUse string `json:"token_use"`
	jwt.RegisteredClaims
}
