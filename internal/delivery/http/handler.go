package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nutrimatch/backend/internal/domain"
	"github.com/nutrimatch/backend/internal/usecase"
)

// Analyzer turns descriptions into estimates
type Analyzer interface {
	AnalyzeFoodDescription(ctx context.Context, description string, profile *domain.UserProfile) domain.AnalysisResult
	AnalyzeActivityDescription(ctx context.Context, description string, profile *domain.UserProfile) domain.AnalysisResult
}

// Recommender produces suggestion texts
type Recommender interface {
	GetDietaryRecommendations(ctx context.Context, remaining domain.Allowance, profile *domain.UserProfile) string
	GetActivitySuggestions(ctx context.Context, currentLevel, goals string, availableMinutes int, profile *domain.UserProfile) string
}

// Diary records accepted estimates per user and day
type Diary interface {
	LogEntry(ctx context.Context, userID string, estimate domain.Estimate, loggedAt time.Time) (*domain.DiaryEntry, error)
	ListEntries(ctx context.Context, userID string, day time.Time) ([]*domain.DiaryEntry, error)
	DeleteEntry(ctx context.Context, userID, entryID string) error
	DailySummary(ctx context.Context, userID string, day time.Time) (*domain.DailySummary, error)
	Remaining(ctx context.Context, userID string, day time.Time, targets domain.Allowance) (domain.Allowance, *domain.DailySummary, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	analyzer    Analyzer
	recommender Recommender
	diary       Diary
}

// NewHandler creates a new HTTP handler. Endpoints whose dependency is nil
// answer 501.
func NewHandler(analyzer Analyzer, recommender Recommender, diary Diary) *Handler {
	return &Handler{
		analyzer:    analyzer,
		recommender: recommender,
		diary:       diary,
	}
}

// AnalyzeRequest is the body of the analyze endpoints
type AnalyzeRequest struct {
	Description string              `json:"description"`
	Profile     *domain.UserProfile `json:"profile,omitempty"`
}

// DietRecommendationRequest is the body of POST /recommendations/diet
type DietRecommendationRequest struct {
	RemainingCalories float64             `json:"remainingCalories"`
	RemainingCarbs    float64             `json:"remainingCarbs"`
	RemainingProteins float64             `json:"remainingProteins"`
	RemainingFats     float64             `json:"remainingFats"`
	Profile           *domain.UserProfile `json:"profile,omitempty"`
}

// ActivityRecommendationRequest is the body of POST /recommendations/activity
type ActivityRecommendationRequest struct {
	CurrentLevel     string              `json:"currentLevel"`
	Goals            string              `json:"goals"`
	AvailableMinutes int                 `json:"availableMinutes"`
	Profile          *domain.UserProfile `json:"profile,omitempty"`
}

// LogEntryRequest is the body of POST /users/:userId/diary
type LogEntryRequest struct {
	Estimate json.RawMessage `json:"estimate"`
	LoggedAt *time.Time      `json:"loggedAt,omitempty"`
}

// RecommendationResponse wraps a suggestion text
type RecommendationResponse struct {
	Text string `json:"text"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "nutrimatch-backend",
		"version": "1.0.0",
	})
}

// AnalyzeFood handles POST /api/v1/analyze/food
func (h *Handler) AnalyzeFood(c *gin.Context) {
	h.analyze(c, func(ctx context.Context, req AnalyzeRequest) domain.AnalysisResult {
		return h.analyzer.AnalyzeFoodDescription(ctx, req.Description, req.Profile)
	})
}

// AnalyzeActivity handles POST /api/v1/analyze/activity
func (h *Handler) AnalyzeActivity(c *gin.Context) {
	h.analyze(c, func(ctx context.Context, req AnalyzeRequest) domain.AnalysisResult {
		return h.analyzer.AnalyzeActivityDescription(ctx, req.Description, req.Profile)
	})
}

func (h *Handler) analyze(c *gin.Context, run func(ctx context.Context, req AnalyzeRequest) domain.AnalysisResult) {
	if h.analyzer == nil {
		notImplemented(c, "analysis")
		return
	}

	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result := run(c.Request.Context(), req)
	if !result.Success {
		c.JSON(http.StatusUnprocessableEntity, result)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DietRecommendations handles POST /api/v1/recommendations/diet
func (h *Handler) DietRecommendations(c *gin.Context) {
	if h.recommender == nil {
		notImplemented(c, "recommendations")
		return
	}

	var req DietRecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	remaining := domain.Allowance{
		Calories: req.RemainingCalories,
		Carbs:    req.RemainingCarbs,
		Proteins: req.RemainingProteins,
		Fats:     req.RemainingFats,
	}
	text := h.recommender.GetDietaryRecommendations(c.Request.Context(), remaining, req.Profile)

	c.JSON(http.StatusOK, RecommendationResponse{Text: text})
}

// ActivityRecommendations handles POST /api/v1/recommendations/activity
func (h *Handler) ActivityRecommendations(c *gin.Context) {
	if h.recommender == nil {
		notImplemented(c, "recommendations")
		return
	}

	var req ActivityRecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	text := h.recommender.GetActivitySuggestions(c.Request.Context(), req.CurrentLevel, req.Goals, req.AvailableMinutes, req.Profile)

	c.JSON(http.StatusOK, RecommendationResponse{Text: text})
}

// LogDiaryEntry handles POST /api/v1/users/:userId/diary
func (h *Handler) LogDiaryEntry(c *gin.Context) {
	if h.diary == nil {
		notImplemented(c, "diary")
		return
	}

	var req LogEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if len(req.Estimate) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: estimate is required"})
		return
	}

	estimate, err := domain.DecodeEstimate(req.Estimate)
	if err != nil {
		respondError(c, err)
		return
	}

	var loggedAt time.Time
	if req.LoggedAt != nil {
		loggedAt = *req.LoggedAt
	}

	entry, err := h.diary.LogEntry(c.Request.Context(), c.Param("userId"), estimate, loggedAt)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// ListDiaryEntries handles GET /api/v1/users/:userId/diary?date=YYYY-MM-DD
func (h *Handler) ListDiaryEntries(c *gin.Context) {
	if h.diary == nil {
		notImplemented(c, "diary")
		return
	}

	day, ok := parseDay(c)
	if !ok {
		return
	}

	entries, err := h.diary.ListEntries(c.Request.Context(), c.Param("userId"), day)
	if err != nil {
		respondError(c, err)
		return
	}
	if entries == nil {
		entries = []*domain.DiaryEntry{}
	}

	c.JSON(http.StatusOK, gin.H{
		"date":    day.Format(usecase.DateLayout),
		"entries": entries,
	})
}

// DeleteDiaryEntry handles DELETE /api/v1/users/:userId/diary/:entryId
func (h *Handler) DeleteDiaryEntry(c *gin.Context) {
	if h.diary == nil {
		notImplemented(c, "diary")
		return
	}

	if err := h.diary.DeleteEntry(c.Request.Context(), c.Param("userId"), c.Param("entryId")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DiarySummary handles GET /api/v1/users/:userId/diary/summary?date=YYYY-MM-DD
func (h *Handler) DiarySummary(c *gin.Context) {
	if h.diary == nil {
		notImplemented(c, "diary")
		return
	}

	day, ok := parseDay(c)
	if !ok {
		return
	}

	summary, err := h.diary.DailySummary(c.Request.Context(), c.Param("userId"), day)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// DiaryRecommendations handles GET /api/v1/users/:userId/diary/recommendations.
// The day's remaining allowance is derived from the diary and the targets
// given as query parameters, then fed to the diet recommender.
func (h *Handler) DiaryRecommendations(c *gin.Context) {
	if h.diary == nil || h.recommender == nil {
		notImplemented(c, "diary recommendations")
		return
	}

	day, ok := parseDay(c)
	if !ok {
		return
	}

	var targets domain.Allowance
	for _, p := range []struct {
		name string
		dst  *float64
	}{
		{"calories", &targets.Calories},
		{"carbs", &targets.Carbs},
		{"proteins", &targets.Proteins},
		{"fats", &targets.Fats},
	} {
		raw := c.Query(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + p.name + " target: " + raw})
			return
		}
		*p.dst = v
	}

	remaining, summary, err := h.diary.Remaining(c.Request.Context(), c.Param("userId"), day, targets)
	if err != nil {
		respondError(c, err)
		return
	}

	text := h.recommender.GetDietaryRecommendations(c.Request.Context(), remaining, nil)

	c.JSON(http.StatusOK, gin.H{
		"text":      text,
		"remaining": remaining,
		"summary":   summary,
	})
}

// parseDay reads the date query parameter; absent means today (UTC)
func parseDay(c *gin.Context) (time.Time, bool) {
	raw := strings.TrimSpace(c.Query("date"))
	if raw == "" {
		return time.Now().UTC().Truncate(24 * time.Hour), true
	}

	day, err := time.Parse(usecase.DateLayout, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD: " + raw})
		return time.Time{}, false
	}
	return day, true
}

// respondError maps domain errors to HTTP status codes
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrEntryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Diary entry not found"})
	default:
		log.Printf("[HTTP] %s %s failed: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func notImplemented(c *gin.Context, feature string) {
	c.JSON(http.StatusNotImplemented, gin.H{
		"error": feature + " is not configured",
	})
}
