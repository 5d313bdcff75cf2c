package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrimatch/backend/internal/domain"
	"github.com/nutrimatch/backend/internal/reference"
)

// fakeCache is a map-backed domain.CacheRepository that counts calls
type fakeCache struct {
	mu   sync.Mutex
	data map[string]interface{}
	ttls map[string]time.Duration
	gets int
	sets int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string]interface{}{}, ttls: map[string]time.Duration{}}
}

func (f *fakeCache) Get(ctx context.Context, key string) (interface{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	v, ok := f.data[key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return v, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets++
	f.data[key] = value
	f.ttls[key] = ttl
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

func (f *fakeCache) Exists(ctx context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.data[key]
	return ok, nil
}

func newTestAnalysisService(t *testing.T, cache domain.CacheRepository) *AnalysisService {
	t.Helper()
	return NewAnalysisService(cache, newDefaultEstimator(t), AnalysisServiceConfig{})
}

func TestAnalyzeFoodDescription(t *testing.T) {
	service := newTestAnalysisService(t, nil)

	result := service.AnalyzeFoodDescription(context.Background(), "una mela", nil)

	require.True(t, result.Success)
	assert.Empty(t, result.Error)
	assert.Equal(t, 90, result.Confidence)
	assert.Equal(t, &domain.FoodEstimate{
		Name: "Mela", Weight: 182, Calories: 95, Carbs: 25.5, Proteins: 0.5, Fats: 0.4, Water: 155,
	}, result.Data)
}

func TestAnalyzeFoodDescription_NotRecognized(t *testing.T) {
	cache := newFakeCache()
	service := newTestAnalysisService(t, cache)

	for _, description := range []string{"", "xyzzy123"} {
		result := service.AnalyzeFoodDescription(context.Background(), description, nil)

		assert.False(t, result.Success)
		assert.Nil(t, result.Data)
		assert.Zero(t, result.Confidence)
		assert.Equal(t, reference.DefaultMessages().FoodNotRecognized, result.Error)
	}
	assert.Zero(t, cache.sets, "failures must not be cached")
}

func TestAnalyzeActivityDescription(t *testing.T) {
	service := newTestAnalysisService(t, nil)
	ctx := context.Background()

	result := service.AnalyzeActivityDescription(ctx, "corsa 45 minuti", nil)
	require.True(t, result.Success)
	assert.Equal(t, 85, result.Confidence)
	assert.Equal(t, &domain.ActivityEstimate{Name: "Corsa", CaloriesBurned: 450, DurationInMinutes: 45}, result.Data)

	result = service.AnalyzeActivityDescription(ctx, "qualcosa", nil)
	assert.False(t, result.Success)
	assert.Equal(t, reference.DefaultMessages().ActivityNotRecognized, result.Error)
}

func TestAnalyze_CacheHit(t *testing.T) {
	cache := newFakeCache()
	service := NewAnalysisService(cache, newDefaultEstimator(t), AnalysisServiceConfig{CacheTTL: time.Hour})
	ctx := context.Background()

	first := service.AnalyzeFoodDescription(ctx, "200g di pasta", nil)
	require.True(t, first.Success)
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, time.Hour, cache.ttls[generateCacheKey(domain.ItemTypeFood, "200g di pasta", nil)])

	// Mutating a returned estimate must not leak into the cache
	first.Data.(*domain.FoodEstimate).Calories = -1

	second := service.AnalyzeFoodDescription(ctx, "  200G DI PASTA ", nil)
	require.True(t, second.Success)
	assert.Equal(t, 1, cache.sets, "second call should be served from cache")
	assert.Equal(t, 262.0, second.Data.(*domain.FoodEstimate).Calories)
}

func TestAnalyze_ActivityCacheKeyIncludesWeight(t *testing.T) {
	cache := newFakeCache()
	service := newTestAnalysisService(t, cache)
	ctx := context.Background()

	light := service.AnalyzeActivityDescription(ctx, "nuoto 30 min", &domain.UserProfile{Weight: 70})
	heavy := service.AnalyzeActivityDescription(ctx, "nuoto 30 min", &domain.UserProfile{Weight: 140})

	assert.Equal(t, 250, light.Data.(*domain.ActivityEstimate).CaloriesBurned)
	assert.Equal(t, 500, heavy.Data.(*domain.ActivityEstimate).CaloriesBurned)
	assert.Equal(t, 2, cache.sets)
}

func TestAnalyze_IsDeterministic(t *testing.T) {
	service := newTestAnalysisService(t, nil)
	ctx := context.Background()

	for _, description := range []string{"una banana", "tennis 50 minuti", "xyzzy123"} {
		assert.Equal(t,
			service.AnalyzeFoodDescription(ctx, description, nil),
			service.AnalyzeFoodDescription(ctx, description, nil))
		assert.Equal(t,
			service.AnalyzeActivityDescription(ctx, description, nil),
			service.AnalyzeActivityDescription(ctx, description, nil))
	}
}

func TestAnalyze_RecoversFromPanic(t *testing.T) {
	// An estimator without a matcher panics as soon as it scores a key
	broken := &Estimator{
		foodKeys: []string{"mela"},
		messages: reference.DefaultMessages(),
	}
	service := NewAnalysisService(nil, broken, AnalysisServiceConfig{})

	var result domain.AnalysisResult
	require.NotPanics(t, func() {
		result = service.AnalyzeFoodDescription(context.Background(), "mela", nil)
	})

	assert.False(t, result.Success)
	assert.Equal(t, reference.DefaultMessages().AnalysisFailed, result.Error)
}

func TestAnalyze_IgnoresForeignCacheValues(t *testing.T) {
	cache := newFakeCache()
	key := generateCacheKey(domain.ItemTypeFood, "mela", nil)
	cache.data[key] = "not a result"
	service := newTestAnalysisService(t, cache)

	result := service.AnalyzeFoodDescription(context.Background(), "mela", nil)

	require.True(t, result.Success)
	assert.Equal(t, "Mela", result.Data.(*domain.FoodEstimate).Name)
}

func TestGenerateCacheKey(t *testing.T) {
	assert.Equal(t, "analysis:food::una mela", generateCacheKey(domain.ItemTypeFood, " Una Mela ", &domain.UserProfile{Weight: 80}))
	assert.Equal(t, "analysis:activity:70:corsa", generateCacheKey(domain.ItemTypeActivity, "Corsa", nil))
	assert.Equal(t, "analysis:activity:82.5:corsa", generateCacheKey(domain.ItemTypeActivity, "corsa", &domain.UserProfile{Weight: 82.5}))
}
