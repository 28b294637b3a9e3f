package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	// Health check endpoint (no auth required)
	s.router.GET("/health", s.healthCheck)

	// API v1 routes
	v1 := s.router.Group("/api/v1")
	{
		// Credential routes
		auth := v1.Group("/auth")
		{
			auth.POST("/register", s.handleRegister)
			auth.POST("/login", s.handleLogin)
			auth.POST("/logout", s.optionalAuthMiddleware(), s.handleLogout)
			auth.GET("/session", s.optionalAuthMiddleware(), s.handleSession)
		}

		// Wizard navigation. Auth is optional: the same screens serve
		// anonymous walkthroughs and signed-in composition.
		flowGroup := v1.Group("/flow")
		flowGroup.Use(s.optionalAuthMiddleware())
		{
			flowGroup.GET("", s.getFlowState)
			flowGroup.POST("/next", s.flowNext)
			flowGroup.POST("/back", s.flowBack)
			flowGroup.POST("/faq", s.flowOpenFAQ)
			flowGroup.POST("/auth", s.flowOpenAuth)
			flowGroup.POST("/create-new", s.flowCreateNew)
			flowGroup.POST("/draft", s.flowSubmitDraft)
			flowGroup.POST("/confirm", s.flowConfirm)
		}

		// Static content
		content := v1.Group("/content")
		{
			content.GET("/faq", s.getFAQ)
			content.GET("/pricing", s.getPricing)
		}

		// Protected routes (JWT authentication required)
		protected := v1.Group("")
		protected.Use(s.authMiddleware())
		{
			messages := protected.Group("/messages")
			{
				messages.GET("", s.getMessages)
				messages.GET("/stats", s.getMessageStats)
				messages.GET("/:id", s.getMessage)
				messages.POST("/:id/boarding-passes", s.uploadBoardingPass)
			}

			protected.DELETE("/boarding-passes/:id", s.removeBoardingPass)

			profile := protected.Group("/profile")
			{
				profile.GET("", s.getProfile)
				profile.PUT("/refund-preference", s.updateRefundPreference)
			}
		}
	}

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})
}
