package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/devmitra/auth_backend/internal/apperrors"
	"github.com/devmitra/auth_backend/internal/core/ports"
	portssvc "github.com/devmitra/auth_backend/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware creates a Gin middleware handler that guards protected
// routes. It extracts the bearer access token, verifies it, and confirms it
// equals the value currently stored for the claimed user, so a token that
// has been superseded by a newer login is rejected before its cryptographic
// expiry. On success the decoded claims are attached to the request context.
//
// Failure messages are deliberately coarse: expired, malformed and
// wrong-signature tokens all produce the same response.
func AuthMiddleware(tokenSvc portssvc.TokenSvcFacade, userRepo ports.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token missing"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token missing"})
			return
		}

		tokenString := parts[1]

		claims, err := tokenSvc.ValidateAccessToken(c.Request.Context(), tokenString)
		if err != nil {
			logger.Warn("Access token failed verification", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		// The token must also match the value on record; a newer login or a
		// cleared column makes the lookup miss.
		if _, err := userRepo.FindUserByIDAndAccessToken(c.Request.Context(), claims.UserID, tokenString); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				logger.Warn("Access token does not match stored token", slog.Int64("user_id", claims.UserID))
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token expired or invalid"})
				return
			}
			logger.Error("Failed to look up user for access token", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		// Store the claims in the context (using standard context)
		ctxWithClaims := context.WithValue(c.Request.Context(), claimsKey, claims)

		// Add user ID to the logger
		enrichedLogger := logger.With(slog.Int64("user_id", claims.UserID))

		// Store the *enriched* logger back into the standard context
		ctxWithLoggerAndClaims := context.WithValue(ctxWithClaims, loggerCtxKey, enrichedLogger)

		// Update the request context
		c.Request = c.Request.WithContext(ctxWithLoggerAndClaims)

		c.Next() // Proceed to the next handler
	}
}
