package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chaitali929/coremodeling/internal/handlers"
	"github.com/chaitali929/coremodeling/internal/logger"
)

// RegisterRoutes mounts the API under /api/v1 plus health, metrics and local files.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	guards handlers.RouteGuards,
) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	ginRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api, guards)
		appHandlers.ArtistHandler.RegisterRoutes(api, guards)
		appHandlers.GalleryHandler.RegisterRoutes(api, guards)
		appHandlers.ApplicationHandler.RegisterRoutes(api, guards)
	}

	if appHandlers.FileHandler != nil {
		appHandlers.FileHandler.RegisterRoutes(ginRouter)
		logger.Info("Local file route /files registered")
	}
}
