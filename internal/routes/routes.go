package routes

import (
	"depositshield_backend/internal/handlers"
	"depositshield_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the JSON API under /api plus the public
// /uploads and /health endpoints.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	guards handlers.RouteGuards,
) {
	api := ginRouter.Group("/api")
	{
		appHandlers.AuthHandler.RegisterRoutes(api, guards)
		appHandlers.PropertyHandler.RegisterRoutes(api, guards)
		appHandlers.ReportHandler.RegisterRoutes(api, guards)
		appHandlers.PhotoHandler.RegisterRoutes(api, guards)
	}

	appHandlers.FileHandler.RegisterRoutes(ginRouter)
	appHandlers.HealthHandler.RegisterRoutes(ginRouter)

	logger.Debug("routes registered", "count", len(ginRouter.Routes()))
}
