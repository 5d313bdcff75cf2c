package domain

// MatchResult is the reference entry that best fits a description
type MatchResult struct {
	Key           string   `json:"key"`
	Index         int      `json:"index"` // position in the reference table
	Score         int      `json:"score"`
	MatchedTokens []string `json:"matchedTokens,omitempty"`
}
