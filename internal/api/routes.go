package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes.
func SetupRoutes(router *gin.Engine, handler *Handler) {
	// Health and readiness checks
	router.GET("/health", handler.HealthCheck)
	router.GET("/ready", handler.ReadyCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/generate", handler.Generate) // POST /api/v1/generate

		packages := v1.Group("/packages")
		{
			packages.GET("", handler.ListPackages)      // GET /api/v1/packages
			packages.GET("/:name", handler.GetPackage)  // GET /api/v1/packages/:name
		}
	}
}
