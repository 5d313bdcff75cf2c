package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// DiaryRepository persists accepted estimates
type DiaryRepository interface {
	Save(ctx context.Context, entry *DiaryEntry) error
	ListByDay(ctx context.Context, userID string, day time.Time) ([]*DiaryEntry, error)
	Delete(ctx context.Context, userID, entryID string) error
}

// USDAClient defines the interface for interacting with USDA FoodData Central API
type USDAClient interface {
	SearchFoods(ctx context.Context, query string) (*USDASearchResponse, error)
}
