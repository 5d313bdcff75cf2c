package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/nutrimatch/backend/internal/domain"
	"github.com/nutrimatch/backend/internal/observability"
)

// AnalysisServiceConfig holds configuration for the analysis service
type AnalysisServiceConfig struct {
	CacheTTL           time.Duration
	EnableDebugLogging bool
}

// AnalysisService is the public boundary of the estimator. It never returns
// an error or panics: every failure becomes an unsuccessful AnalysisResult.
type AnalysisService struct {
	cache              domain.CacheRepository
	estimator          *Estimator
	cacheTTL           time.Duration
	enableDebugLogging bool
}

// NewAnalysisService creates a new analysis service. cache may be nil.
func NewAnalysisService(
	cache domain.CacheRepository,
	estimator *Estimator,
	config AnalysisServiceConfig,
) *AnalysisService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	return &AnalysisService{
		cache:              cache,
		estimator:          estimator,
		cacheTTL:           cacheTTL,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// AnalyzeFoodDescription estimates the nutrition content of a described food.
// Flow: check cache -> match and scale -> cache -> return
func (s *AnalysisService) AnalyzeFoodDescription(
	ctx context.Context,
	description string,
	profile *domain.UserProfile,
) domain.AnalysisResult {
	cacheKey := generateCacheKey(domain.ItemTypeFood, description, nil)

	return s.analyze(ctx, domain.ItemTypeFood, cacheKey, s.estimator.Messages().FoodNotRecognized,
		func() (domain.Estimate, int, error) {
			return s.estimator.EstimateFood(description)
		})
}

// AnalyzeActivityDescription estimates the calories burned by a described activity
func (s *AnalysisService) AnalyzeActivityDescription(
	ctx context.Context,
	description string,
	profile *domain.UserProfile,
) domain.AnalysisResult {
	cacheKey := generateCacheKey(domain.ItemTypeActivity, description, profile)

	return s.analyze(ctx, domain.ItemTypeActivity, cacheKey, s.estimator.Messages().ActivityNotRecognized,
		func() (domain.Estimate, int, error) {
			return s.estimator.EstimateActivity(description, profile)
		})
}

func (s *AnalysisService) analyze(
	ctx context.Context,
	itemType domain.ItemType,
	cacheKey string,
	notRecognized string,
	estimate func() (domain.Estimate, int, error),
) (result domain.AnalysisResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ANALYZE] %s analysis panic: %v", itemType, r)
			observability.RecordAnalysis(string(itemType), observability.OutcomeFailed, observability.SourceEstimator, 0)
			result = failure(s.estimator.Messages().AnalysisFailed)
		}
	}()

	// Try cache first
	if cached, err := s.getFromCache(ctx, cacheKey); err == nil {
		observability.RecordAnalysis(string(itemType), observability.OutcomeRecognized, observability.SourceCache, cached.Confidence)
		return cached
	}

	est, confidence, err := estimate()
	if err != nil {
		if errors.Is(err, domain.ErrNotRecognized) {
			if s.enableDebugLogging {
				log.Printf("[ANALYZE] %s not recognized: %q", itemType, cacheKey)
			}
			observability.RecordAnalysis(string(itemType), observability.OutcomeNotRecognized, observability.SourceEstimator, 0)
			return failure(notRecognized)
		}
		log.Printf("[ANALYZE] %s analysis error: %v", itemType, err)
		observability.RecordAnalysis(string(itemType), observability.OutcomeFailed, observability.SourceEstimator, 0)
		return failure(s.estimator.Messages().AnalysisFailed)
	}

	result = domain.AnalysisResult{
		Success:    true,
		Data:       est,
		Confidence: confidence,
	}

	if err := s.setInCache(ctx, cacheKey, result); err != nil {
		log.Printf("[ANALYZE] Failed to cache %s result: %v", itemType, err)
	}

	observability.RecordAnalysis(string(itemType), observability.OutcomeRecognized, observability.SourceEstimator, confidence)
	return result
}

func failure(message string) domain.AnalysisResult {
	return domain.AnalysisResult{Success: false, Error: message}
}

// generateCacheKey creates a cache key from the item type, description and,
// for activities, the body weight the burn was scaled to.
// Format: "analysis:{type}:{weight}:{lowercased description}"
func generateCacheKey(itemType domain.ItemType, description string, profile *domain.UserProfile) string {
	weight := ""
	if itemType == domain.ItemTypeActivity {
		weight = strconv.FormatFloat(profile.BodyWeight(), 'f', -1, 64)
	}
	return fmt.Sprintf("analysis:%s:%s:%s", itemType, weight, normalizeForCacheKey(description))
}

// normalizeForCacheKey lowercases and trims; inner spacing and punctuation
// affect matching and are preserved.
func normalizeForCacheKey(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

// getFromCache retrieves a successful result from cache
func (s *AnalysisService) getFromCache(ctx context.Context, key string) (domain.AnalysisResult, error) {
	if s.cache == nil {
		return domain.AnalysisResult{}, domain.ErrCacheMiss
	}

	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return domain.AnalysisResult{}, err
	}

	result, ok := value.(domain.AnalysisResult)
	if !ok || !result.Success {
		return domain.AnalysisResult{}, domain.ErrCacheMiss
	}

	result.Data = cloneEstimate(result.Data)
	return result, nil
}

// setInCache stores a successful result. Failures are not cached.
func (s *AnalysisService) setInCache(ctx context.Context, key string, result domain.AnalysisResult) error {
	if s.cache == nil || !result.Success {
		return nil
	}
	result.Data = cloneEstimate(result.Data)
	return s.cache.Set(ctx, key, result, s.cacheTTL)
}

// cloneEstimate copies an estimate so cached values are never shared with callers
func cloneEstimate(e domain.Estimate) domain.Estimate {
	switch v := e.(type) {
	case *domain.FoodEstimate:
		c := *v
		return &c
	case *domain.ActivityEstimate:
		c := *v
		return &c
	}
	return e
}
