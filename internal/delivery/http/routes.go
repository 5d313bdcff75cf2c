package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nutrimatch/backend/config"
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

	// Health and metrics stay outside the rate limit
	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP, time.Minute))
	{
		analyze := v1.Group("/analyze")
		{
			analyze.POST("/food", handler.AnalyzeFood)
			analyze.POST("/activity", handler.AnalyzeActivity)
		}

		recommendations := v1.Group("/recommendations")
		{
			recommendations.POST("/diet", handler.DietRecommendations)
			recommendations.POST("/activity", handler.ActivityRecommendations)
		}

		diary := v1.Group("/users/:userId/diary")
		{
			diary.POST("", handler.LogDiaryEntry)
			diary.GET("", handler.ListDiaryEntries)
			diary.GET("/summary", handler.DiarySummary)
			diary.GET("/recommendations", handler.DiaryRecommendations)
			diary.DELETE("/:entryId", handler.DeleteDiaryEntry)
		}
	}

	return router
}
