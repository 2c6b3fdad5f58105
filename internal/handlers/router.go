package handlers

import (
	"github.com/martinkasobkova-alt/zenyzenam/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) SetupRouter(rateLimiter *services.IPRateLimiter) *gin.Engine {
	r := gin.Default()

	if rateLimiter != nil {
		r.Use(h.RateLimitMiddleware(rateLimiter))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK", "message": "Server is running"})
	})

	// Public Routes
	r.GET("/services", h.ListServices)
	r.POST("/services", h.AddService)
	r.DELETE("/services/:id", h.DeleteService)
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.POST("/password-reset/request", h.RequestPasswordReset)
	r.POST("/password-reset/confirm", h.ConfirmPasswordReset)

	// Protected Routes
	authorized := r.Group("/")
	authorized.Use(h.AuthRequired())
	{
		authorized.GET("/profile", h.GetProfile)
		authorized.PUT("/profile/services", h.UpdateServices)
		authorized.PUT("/profile/city", h.UpdateCity)
		authorized.PUT("/profile/avatar", h.UpdateAvatar)
		authorized.DELETE("/profile", h.DeleteProfile)
		authorized.GET("/search", h.Search)
		authorized.POST("/messages", h.SendMessage)
		authorized.GET("/messages", h.ListMessages)
	}

	return r
}
