package usecase

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nutrimatch/backend/internal/domain"
	"github.com/nutrimatch/backend/internal/observability"
)

// DateLayout is the calendar-day format used by the diary
const DateLayout = "2006-01-02"

// DiaryService records accepted estimates and totals them per day
type DiaryService struct {
	repo domain.DiaryRepository
	now  func() time.Time
}

// NewDiaryService creates a diary service over a repository
func NewDiaryService(repo domain.DiaryRepository) *DiaryService {
	return &DiaryService{repo: repo, now: time.Now}
}

// LogEntry stores an accepted estimate. A zero loggedAt means now.
func (s *DiaryService) LogEntry(
	ctx context.Context,
	userID string,
	estimate domain.Estimate,
	loggedAt time.Time,
) (*domain.DiaryEntry, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidRequest)
	}
	if err := validateEstimate(estimate); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if loggedAt.IsZero() {
		loggedAt = now
	}

	entry := &domain.DiaryEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Estimate:  cloneEstimate(estimate),
		LoggedAt:  loggedAt.UTC(),
		CreatedAt: now,
	}

	if err := s.repo.Save(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save diary entry: %w", err)
	}

	log.Printf("[DIARY] Logged %s entry %s for user %s", estimate.ItemType(), entry.ID, userID)
	observability.RecordDiaryEntry(string(estimate.ItemType()))

	return entry, nil
}

// ListEntries returns a user's entries for one UTC day in chronological order
func (s *DiaryService) ListEntries(ctx context.Context, userID string, day time.Time) ([]*domain.DiaryEntry, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidRequest)
	}
	return s.repo.ListByDay(ctx, userID, day)
}

// DeleteEntry removes one entry of a user
func (s *DiaryService) DeleteEntry(ctx context.Context, userID, entryID string) error {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(entryID) == "" {
		return fmt.Errorf("%w: user id and entry id are required", domain.ErrInvalidRequest)
	}
	return s.repo.Delete(ctx, userID, entryID)
}

// DailySummary totals the food and activity entries of one UTC day
func (s *DiaryService) DailySummary(ctx context.Context, userID string, day time.Time) (*domain.DailySummary, error) {
	entries, err := s.ListEntries(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	summary := &domain.DailySummary{
		UserID:  userID,
		Date:    day.UTC().Format(DateLayout),
		Entries: len(entries),
	}

	for _, entry := range entries {
		switch e := entry.Estimate.(type) {
		case *domain.FoodEstimate:
			summary.Calories += e.Calories
			summary.Carbs += e.Carbs
			summary.Proteins += e.Proteins
			summary.Fats += e.Fats
			summary.Water += e.Water
		case *domain.ActivityEstimate:
			summary.CaloriesBurned += e.CaloriesBurned
			summary.ActiveMinutes += e.DurationInMinutes
		}
	}

	summary.Calories = roundTo(summary.Calories, 0)
	summary.Carbs = roundTo(summary.Carbs, 1)
	summary.Proteins = roundTo(summary.Proteins, 1)
	summary.Fats = roundTo(summary.Fats, 1)
	summary.Water = roundTo(summary.Water, 0)

	return summary, nil
}

// Remaining subtracts the day's intake from the targets. Calories burned
// through activities are added back to the calorie budget. Nothing goes
// below zero.
func (s *DiaryService) Remaining(
	ctx context.Context,
	userID string,
	day time.Time,
	targets domain.Allowance,
) (domain.Allowance, *domain.DailySummary, error) {
	summary, err := s.DailySummary(ctx, userID, day)
	if err != nil {
		return domain.Allowance{}, nil, err
	}

	remaining := domain.Allowance{
		Calories: math.Max(0, targets.Calories-summary.Calories+float64(summary.CaloriesBurned)),
		Carbs:    math.Max(0, roundTo(targets.Carbs-summary.Carbs, 1)),
		Proteins: math.Max(0, roundTo(targets.Proteins-summary.Proteins, 1)),
		Fats:     math.Max(0, roundTo(targets.Fats-summary.Fats, 1)),
	}

	return remaining, summary, nil
}

func validateEstimate(estimate domain.Estimate) error {
	switch e := estimate.(type) {
	case *domain.FoodEstimate:
		if e == nil || strings.TrimSpace(e.Name) == "" {
			return fmt.Errorf("%w: food estimate needs a name", domain.ErrInvalidRequest)
		}
		if e.Weight <= 0 || e.Calories < 0 || e.Carbs < 0 || e.Proteins < 0 || e.Fats < 0 || e.Water < 0 {
			return fmt.Errorf("%w: food estimate values must be non-negative with a positive weight", domain.ErrInvalidRequest)
		}
	case *domain.ActivityEstimate:
		if e == nil || strings.TrimSpace(e.Name) == "" {
			return fmt.Errorf("%w: activity estimate needs a name", domain.ErrInvalidRequest)
		}
		if e.DurationInMinutes <= 0 || e.CaloriesBurned < 0 {
			return fmt.Errorf("%w: activity estimate needs a positive duration", domain.ErrInvalidRequest)
		}
	default:
		return fmt.Errorf("%w: estimate is required", domain.ErrInvalidRequest)
	}
	return nil
}
