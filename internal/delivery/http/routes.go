package http

import (
	"github.com/gin-gonic/gin"

	"github.com/promolens/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP, cfg.RateLimit.Burst))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		flyers := v1.Group("/flyers")
		{
			flyers.POST("/parse", handler.ParseFlyer)
		}

		v1.GET("/records", handler.ListRecords)
		v1.DELETE("/records", handler.ClearRecords)

		analysis := v1.Group("/analysis")
		{
			analysis.GET("/summary", handler.Summary)
			analysis.GET("/deals", handler.TopDeals)
			analysis.GET("/compare", handler.ComparePrices)
		}

		v1.POST("/cart/optimize", handler.OptimizeCart)
		v1.POST("/shopping-list", handler.ShoppingList)

		exports := v1.Group("/export")
		{
			exports.GET("/csv", handler.ExportCSV)
			exports.GET("/guide", handler.ExportGuide)
		}
	}

	return router
}
