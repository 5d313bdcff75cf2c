package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/nutrimatch/backend/internal/domain"
)

// fakeClock lets tests move time without sleeping
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestCache(t *testing.T) (*MemoryCache, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	cache := NewMemoryCache(time.Hour)
	cache.now = clock.Now
	t.Cleanup(cache.Close)
	return cache, clock
}

func TestMemoryCache_SetAndGet(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		key   string
		value interface{}
	}{
		{
			name:  "store and retrieve string",
			key:   "test-key-1",
			value: "test-value",
		},
		{
			name: "store and retrieve analysis result",
			key:  "analysis:food::mela",
			value: domain.AnalysisResult{
				Success:    true,
				Data:       &domain.FoodEstimate{Name: "Mela", Weight: 182, Calories: 95},
				Confidence: 90,
			},
		},
		{
			name:  "store and retrieve int",
			key:   "test-key-3",
			value: 42,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache, _ := newTestCache(t)

			if err := cache.Set(ctx, tt.key, tt.value, time.Minute); err != nil {
				t.Fatalf("Set() error = %v", err)
			}

			got, err := cache.Get(ctx, tt.key)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}

			if fmt.Sprintf("%#v", got) != fmt.Sprintf("%#v", tt.value) {
				t.Errorf("Get() = %#v, want %#v", got, tt.value)
			}
		})
	}
}

func TestMemoryCache_StoresValuesAsGiven(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	result := domain.AnalysisResult{Success: true, Data: &domain.ActivityEstimate{Name: "Corsa", CaloriesBurned: 300, DurationInMinutes: 30}}
	if err := cache.Set(ctx, "k", result, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := cache.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	stored, ok := got.(domain.AnalysisResult)
	if !ok {
		t.Fatalf("Get() returned %T, want domain.AnalysisResult", got)
	}
	if _, ok := stored.Data.(*domain.ActivityEstimate); !ok {
		t.Errorf("Data = %T, want *domain.ActivityEstimate", stored.Data)
	}
}

func TestMemoryCache_Expiration(t *testing.T) {
	cache, clock := newTestCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, "short", "value", time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	clock.Advance(59 * time.Second)
	if _, err := cache.Get(ctx, "short"); err != nil {
		t.Errorf("Get() before expiry error = %v", err)
	}

	clock.Advance(2 * time.Second)
	if _, err := cache.Get(ctx, "short"); err != domain.ErrCacheMiss {
		t.Errorf("Get() after expiry error = %v, want %v", err, domain.ErrCacheMiss)
	}
	if exists, _ := cache.Exists(ctx, "short"); exists {
		t.Errorf("Exists() = true, want false after expiry")
	}
}

func TestMemoryCache_Get_CacheMiss(t *testing.T) {
	cache, _ := newTestCache(t)

	_, err := cache.Get(context.Background(), "non-existent-key")
	if err != domain.ErrCacheMiss {
		t.Errorf("Get() error = %v, want %v", err, domain.ErrCacheMiss)
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	key := "delete-test"
	if err := cache.Set(ctx, key, "value", time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if err := cache.Delete(ctx, key); err != nil {
		t.Errorf("Delete() error = %v", err)
	}

	if _, err := cache.Get(ctx, key); err != domain.ErrCacheMiss {
		t.Errorf("Get() after delete error = %v, want %v", err, domain.ErrCacheMiss)
	}
}

func TestMemoryCache_Exists(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	exists, err := cache.Exists(ctx, "exists-test")
	if err != nil {
		t.Errorf("Exists() error = %v", err)
	}
	if exists {
		t.Errorf("Exists() = true, want false for non-existent key")
	}

	if err := cache.Set(ctx, "exists-test", "value", time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	exists, err = cache.Exists(ctx, "exists-test")
	if err != nil {
		t.Errorf("Exists() error = %v", err)
	}
	if !exists {
		t.Errorf("Exists() = false, want true after setting value")
	}
}

func TestMemoryCache_Purge(t *testing.T) {
	cache, clock := newTestCache(t)
	ctx := context.Background()

	_ = cache.Set(ctx, "old", 1, time.Minute)
	_ = cache.Set(ctx, "fresh", 2, time.Hour)

	clock.Advance(2 * time.Minute)
	cache.purge()

	if size := cache.Size(); size != 1 {
		t.Fatalf("Size() = %d, want 1 after purge", size)
	}
	if _, err := cache.Get(ctx, "fresh"); err != nil {
		t.Errorf("Get(fresh) error = %v", err)
	}
}

func TestMemoryCache_Clear(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := cache.Set(ctx, string(rune('a'+i)), i, time.Minute); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
	}
	if size := cache.Size(); size != 5 {
		t.Fatalf("Size() = %d, want 5 before clear", size)
	}

	cache.Clear()

	if size := cache.Size(); size != 0 {
		t.Errorf("Size() = %d, want 0 after clear", size)
	}
}

func TestMemoryCache_CloseIsIdempotent(t *testing.T) {
	cache := NewMemoryCache(0)
	cache.Close()
	cache.Close()
}

func TestMemoryCache_Concurrent(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := string(rune('a' + id))
			if err := cache.Set(ctx, key, id, time.Minute); err != nil {
				t.Errorf("Concurrent Set() error = %v", err)
			}
			if _, err := cache.Get(ctx, key); err != nil {
				t.Errorf("Concurrent Get() error = %v", err)
			}
		}(i)
	}
	wg.Wait()

	if size := cache.Size(); size != 10 {
		t.Errorf("Size() = %d, want 10", size)
	}
}
