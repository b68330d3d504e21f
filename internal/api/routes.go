package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRoutes configures all application routes.
func SetupRoutes(router *gin.Engine, svc AnalysisPort, logger *zap.Logger) {
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(AccessLog(logger))

	h := NewHandler(svc, logger)
	router.GET("/health", h.Health)
	router.POST("/analyze", h.Analyze)
	router.GET("/documents/:owner", h.Documents)
	router.GET("/dashboard/:owner", h.Dashboard)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not Found",
			"message": "The requested resource was not found",
			"path":    c.Request.URL.Path,
		})
	})
}
