package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/warrenhq/warren/internal/server/handlers"
	"github.com/warrenhq/warren/pkg/logger"
)

// NewRouter assembles the gin engine with all API routes mounted.
func NewRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(requestLogger(), gin.Recovery())

	h := handlers.New(db)

	api := engine.Group("/api")
	{
		folders := api.Group("/folders")
		{
			folders.GET("/tree", h.FolderTree)
			folders.GET("/standalone-requests", h.ListStandaloneRequests)
			folders.POST("", h.CreateFolder)
			folders.POST("/reorder", h.ReorderFolders)
			folders.PUT("/:id", h.UpdateFolder)
			folders.DELETE("/:id", h.DeleteFolder)
		}

		requests := api.Group("/requests")
		{
			requests.POST("", h.CreateRequest)
			requests.POST("/reorder", h.ReorderRequests)
			requests.PUT("/:id", h.UpdateRequest)
			requests.DELETE("/:id", h.DeleteRequest)
		}

		environments := api.Group("/environments")
		{
			environments.GET("", h.ListEnvironments)
			environments.POST("", h.CreateEnvironment)
			environments.PUT("/:id", h.UpdateEnvironment)
			environments.DELETE("/:id", h.DeleteEnvironment)
			environments.POST("/:id/activate", h.ActivateEnvironment)
		}

		history := api.Group("/history")
		{
			history.GET("", h.ListHistory)
			history.DELETE("", h.ClearHistory)
			history.DELETE("/:id", h.DeleteHistoryEntry)
		}

		api.POST("/execute", h.Execute)
	}

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return engine
}

// requestLogger logs each request with its latency and status.
func requestLogger() gin.HandlerFunc {
	log := logger.WithModule("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
