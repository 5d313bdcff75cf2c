package main

import (
	"fmt"
	"log"
	"os"

	"github.com/nutrimatch/backend/config"
	httpDelivery "github.com/nutrimatch/backend/internal/delivery/http"
	"github.com/nutrimatch/backend/internal/infrastructure/cache"
	"github.com/nutrimatch/backend/internal/infrastructure/sqlite"
	"github.com/nutrimatch/backend/internal/reference"
	"github.com/nutrimatch/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting NutriMatch Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Cache Type: %s", cfg.Cache.Type)

	// Reference tables are loaded once and never change afterwards
	tables, err := reference.Load(cfg.Reference.Path)
	if err != nil {
		log.Fatalf("Failed to load reference tables: %v", err)
	}

	matcher := usecase.NewMatchingService(usecase.MatchConfig{
		EnableDebugLogging: cfg.Matching.EnableDebugLogging,
	})
	estimator, err := usecase.NewEstimator(tables, matcher)
	if err != nil {
		log.Fatalf("Failed to build estimator: %v", err)
	}
	log.Printf("Matching: debug=%v", cfg.Matching.EnableDebugLogging)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache(cache.DefaultCleanupInterval)
	defer memoryCache.Close()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	diaryStore, err := sqlite.NewDiaryStore(cfg.Diary.DBPath)
	if err != nil {
		log.Fatalf("Failed to open diary database: %v", err)
	}
	defer diaryStore.Close()
	log.Printf("Diary database: %s", cfg.Diary.DBPath)

	// Initialize usecase layer
	analysisService := usecase.NewAnalysisService(
		memoryCache,
		estimator,
		usecase.AnalysisServiceConfig{
			CacheTTL:           cfg.Cache.TTL,
			EnableDebugLogging: cfg.Matching.EnableDebugLogging,
		},
	)
	recommendationService := usecase.NewRecommendationService(estimator)
	diaryService := usecase.NewDiaryService(diaryStore)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(analysisService, recommendationService, diaryService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
