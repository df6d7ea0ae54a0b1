package server

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/homekeep-labs/homekeeper/internal/common"
)

// SetupRouter creates and configures the Gin router.
func SetupRouter(cfg common.ServerConfig, handler *Handler, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware(logger))
	router.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/v1")
	{
		receipts := v1.Group("/receipts")
		{
			receipts.POST("/extract", handler.ExtractReceipt)
			receipts.POST("/extract-text", handler.ExtractText)
		}

		inventory := v1.Group("/inventory")
		{
			inventory.POST("/match", handler.MatchInventory)
			inventory.GET("/export", handler.ExportInventory)

			items := inventory.Group("/items")
			{
				items.POST("", handler.CreateItem)
				items.GET("", handler.ListItems)
				items.GET("/:id", handler.GetItem)
				items.PUT("/:id", handler.UpdateItem)
				items.DELETE("/:id", handler.DeleteItem)
			}
		}
	}

	return router
}
