package usecase

import (
	"log"
	"strings"

	"github.com/nutrimatch/backend/internal/domain"
)

// Scoring weights
const (
	keySubstringBonus = 10 // Reference key appears in the description
	tokenPartialBonus = 5  // Token and key contain one another
)

// Confidence policy. Confidence is score*10 saturated at a per-kind cap;
// it is a heuristic, not a probability.
const (
	confidencePerPoint    = 10
	FoodConfidenceCap     = 90
	ActivityConfidenceCap = 85
)

// MatchConfig holds configuration for the matching service
type MatchConfig struct {
	EnableDebugLogging bool
}

// MatchingService maps a free-text description to a reference key
type MatchingService struct {
	enableDebugLogging bool
}

// NewMatchingService creates a new matching service with the given configuration
func NewMatchingService(config MatchConfig) *MatchingService {
	return &MatchingService{
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// FindBestMatch scores every key against the description and returns the
// highest scoring one. Keys are visited in order and a later key must score
// strictly higher to replace an earlier one, so ties go to the first key.
// A best score of zero yields domain.ErrNotRecognized.
func (s *MatchingService) FindBestMatch(description string, keys []string) (*domain.MatchResult, error) {
	normalized := normalizeDescription(description)
	tokens := tokenize(normalized)

	if len(tokens) == 0 || len(keys) == 0 {
		return nil, domain.ErrNotRecognized
	}

	var bestMatch *domain.MatchResult
	highestScore := 0

	for i, key := range keys {
		score, matchedTokens := calculateMatchScore(normalized, tokens, key)

		if s.enableDebugLogging && score > 0 {
			log.Printf("[MATCH] Key: %q | Score: %d | Matched: %v", key, score, matchedTokens)
		}

		if score > highestScore {
			highestScore = score
			bestMatch = &domain.MatchResult{
				Key:           key,
				Index:         i,
				Score:         score,
				MatchedTokens: matchedTokens,
			}
		}
	}

	if bestMatch == nil {
		if s.enableDebugLogging {
			log.Printf("[MATCH] No match for: %q", description)
		}
		return nil, domain.ErrNotRecognized
	}

	if s.enableDebugLogging {
		log.Printf("[MATCH] Best match for %q: %q (score: %d)", description, bestMatch.Key, bestMatch.Score)
	}

	return bestMatch, nil
}

// calculateMatchScore adds the key substring bonus and one partial bonus per
// token that contains, or is contained in, the key.
func calculateMatchScore(normalized string, tokens []string, key string) (int, []string) {
	if key == "" {
		return 0, nil
	}

	score := 0
	if strings.Contains(normalized, key) {
		score += keySubstringBonus
	}

	var matched []string
	for _, token := range tokens {
		if strings.Contains(key, token) || strings.Contains(token, key) {
			score += tokenPartialBonus
			matched = append(matched, token)
		}
	}

	return score, matched
}

// Confidence converts a match score into a confidence bounded to [0, ceiling]
func Confidence(score, ceiling int) int {
	c := score * confidencePerPoint
	if c > ceiling {
		c = ceiling
	}
	if c < 0 {
		c = 0
	}
	return c
}

// normalizeDescription lowercases the description
func normalizeDescription(s string) string {
	return strings.ToLower(s)
}

// tokenize splits on whitespace; it never returns empty tokens
func tokenize(s string) []string {
	return strings.Fields(s)
}
