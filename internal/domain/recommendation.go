package domain

import (
	"context"
	"encoding/json"
)

// RecommendationMode selects which output shape the completion service is asked for.
type RecommendationMode string

const (
	// ModeQuestion asks for specific problems: {slug, title, difficulty, reason}.
	ModeQuestion RecommendationMode = "question"
	// ModeTag asks for topic buckets: {tagSlug, tagName, difficulty, count, reason}.
	ModeTag RecommendationMode = "tag"
)

func ParseRecommendationMode(s string) (RecommendationMode, bool) {
	switch RecommendationMode(s) {
	case "", ModeQuestion:
		return ModeQuestion, true
	case ModeTag:
		return ModeTag, true
	}
	return "", false
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Guidance tunes generation. It is sent to the model alongside the profile.
type Guidance struct {
	MaxTotalCount          int  `json:"maxTotalCount"`
	PreferFreshPracticeMix bool `json:"preferFreshPracticeMix"`
}

func DefaultGuidance() Guidance {
	return Guidance{MaxTotalCount: 25, PreferFreshPracticeMix: true}
}

// RecommendationRequest is the ephemeral input to one generation.
type RecommendationRequest struct {
	Profile  *Profile           `json:"profile"`
	Guidance Guidance           `json:"guidance"`
	Mode     RecommendationMode `json:"-"`
}

// Recommendation is one validated item. Fields holds the model's entry plus the derived link
// and is what gets serialized, so unknown keys reach the client untouched.
type Recommendation struct {
	Identifier string
	Title      string
	Difficulty Difficulty
	Reason     string
	Count      int
	Link       string
	Fields     map[string]any
}

func (r Recommendation) MarshalJSON() ([]byte, error) {
	if r.Fields == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(r.Fields)
}

// RecommendationResult is the response body of a successful generation.
type RecommendationResult struct {
	Schema          string
	Recommendations []Recommendation
	// Extra holds any other top-level keys the model returned.
	Extra map[string]any
}

func (r RecommendationResult) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Extra)+2)
	for k, v := range r.Extra {
		out[k] = v
	}
	out["schema"] = r.Schema
	recs := r.Recommendations
	if recs == nil {
		recs = []Recommendation{}
	}
	out["recommendations"] = recs
	return json.Marshal(out)
}

type RecommendationUsecase interface {
	Generate(ctx context.Context, userID string, mode RecommendationMode) (*RecommendationResult, error)
}
