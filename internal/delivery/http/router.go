package http

import (
	"github.com/gin-gonic/gin"

	"github.com/tzchat/tzchat-backend/internal/delivery/http/handler"
	"github.com/tzchat/tzchat-backend/internal/delivery/http/middleware"
)

type Router struct {
	authHandler      *handler.AuthHandler
	profileHandler   *handler.ProfileHandler
	searchHandler    *handler.SearchHandler
	targetHandler    *handler.TargetHandler
	emergencyHandler *handler.EmergencyHandler
	authMiddleware   *middleware.AuthMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	searchHandler *handler.SearchHandler,
	targetHandler *handler.TargetHandler,
	emergencyHandler *handler.EmergencyHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		authHandler:      authHandler,
		profileHandler:   profileHandler,
		searchHandler:    searchHandler,
		targetHandler:    targetHandler,
		emergencyHandler: emergencyHandler,
		authMiddleware:   authMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	registerValidations()

	router := gin.Default()

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
			auth.POST("/refresh", r.authHandler.Refresh)
			auth.POST("/logout", r.authHandler.Logout)
		}

		// Protected routes
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			// Search-settings routes
			profile := protected.Group("/profile")
			{
				profile.GET("/search", r.profileHandler.GetSearchSettings)
				profile.PUT("/search", r.profileHandler.UpdateSearchSettings)
			}

			// Filter-chain search routes
			search := protected.Group("/search")
			{
				search.POST("", r.searchHandler.Search)
				search.POST("/emergency", r.searchHandler.SearchEmergency)
			}

			// Ranked target feed
			protected.GET("/targets", r.targetHandler.ListTargets)

			// Emergency mode
			emergency := protected.Group("/emergency")
			{
				emergency.GET("", r.emergencyHandler.Status)
				emergency.POST("", r.emergencyHandler.Activate)
				emergency.DELETE("", r.emergencyHandler.Deactivate)
			}
		}
	}

	return router
}
