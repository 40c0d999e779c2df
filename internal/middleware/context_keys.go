package middleware

import (
	"github.com/devmitra/auth_backend/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// claimsKey is the key used to store the authenticated user's decoded token
// claims in the request context.
const claimsKey = contextKey("authClaims")

// GetClaimsFromContext retrieves the decoded access-token claims set by the
// auth guard. It returns the claims and a boolean indicating if they were found.
func GetClaimsFromContext(c *gin.Context) (*domain.AccessTokenClaims, bool) {
	claimsVal := c.Request.Context().Value(claimsKey)
	if claimsVal == nil {
		return nil, false
	}

	claims, ok := claimsVal.(*domain.AccessTokenClaims)
	if !ok {
		// This should not happen if the auth middleware sets it correctly.
		return nil, false
	}
	return claims, true
}
