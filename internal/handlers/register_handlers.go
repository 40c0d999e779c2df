package handlers

import (
	"github.com/devmitra/auth_backend/internal/core/ports"
	portssvc "github.com/devmitra/auth_backend/internal/core/ports/services"
	"github.com/devmitra/auth_backend/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// using interfaces.
func RegisterRoutes(
	r *gin.Engine,
	authService portssvc.AuthSvcFacade,
	tokenService portssvc.TokenSvcFacade,
	userRepo ports.UserRepository,
) {
	r.Use(cors.Default())

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	h := NewAuthHandler(authService)

	api := r.Group("/api")
	{
		// Public routes
		api.POST("/signup", h.Signup)
		api.POST("/login", h.Login)
		api.POST("/refresh", h.Refresh)

		// Guarded routes
		guard := middleware.AuthMiddleware(tokenService, userRepo)
		api.GET("/me", guard, h.Me)
		api.POST("/logout", guard, h.Logout)
	}
}
