package recommend_test

import (
	"encoding/json"
	"testing"

	"interview-prep-backend/internal/domain"
	"interview-prep-backend/internal/recommend"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotateTag_DifficultyMapping(t *testing.T) {
	tests := []struct {
		difficulty any
		want       string
	}{
		{"EASY", "Easy"},
		{"HARD", "Hard"},
		{"MEDIUM", "Medium"},
		{"easy", "Medium"},
		{nil, "Medium"},
	}
	for _, tt := range tests {
		entry := map[string]any{"tagSlug": "graph"}
		if tt.difficulty != nil {
			entry["difficulty"] = tt.difficulty
		}
		got := recommend.AnnotateTag(entry)
		assert.Equal(t, "https://leetcode.com/problemset/?topicSlugs=graph&difficulty="+tt.want, got[recommend.LinkField])
	}
}

func TestAnnotateTag_EncodesSlugAndKeepsFields(t *testing.T) {
	entry := map[string]any{"tagSlug": "a b", "difficulty": "HARD", "exampleQuery": "q"}
	got := recommend.AnnotateTag(entry)

	assert.Equal(t, "https://leetcode.com/problemset/?topicSlugs=a%20b&difficulty=Hard", got[recommend.LinkField])
	assert.Equal(t, "q", got["exampleQuery"])
	assert.NotContains(t, entry, recommend.LinkField, "input must not be mutated")
}

func TestAnnotateQuestion(t *testing.T) {
	got := recommend.AnnotateQuestion(map[string]any{"slug": "two-sum"})
	assert.Equal(t, "https://leetcode.com/problems/two-sum/", got[recommend.LinkField])

	got = recommend.AnnotateQuestion(map[string]any{"slug": "", "titleSlug": "lru-cache"})
	assert.Equal(t, "https://leetcode.com/problems/lru-cache/", got[recommend.LinkField])

	got = recommend.AnnotateQuestion(map[string]any{})
	assert.NotContains(t, got, recommend.LinkField)
}

func TestEntries_NonArray(t *testing.T) {
	assert.Empty(t, recommend.Entries(map[string]any{}))
	assert.Empty(t, recommend.Entries(map[string]any{"recommendations": "nope"}))
	assert.Empty(t, recommend.Entries(map[string]any{"recommendations": map[string]any{"a": 1}}))
}

func TestNormalize_QuestionMode(t *testing.T) {
	parsed, err := recommend.RecoverJSON(`{
		"schema": "type Query { x: Int }",
		"notes": "extra",
		"recommendations": [
			{"slug": "two-sum", "title": "Two Sum", "difficulty": "EASY", "reason": "warm-up", "hint": "hash map"},
			{"titleSlug": "lru-cache", "title": "LRU Cache", "difficulty": "MEDIUM", "reason": "design"},
			{"title": "No slug", "difficulty": "HARD"},
			{"slug": "bad-difficulty", "difficulty": "INSANE"},
			"not an object"
		]
	}`)
	require.NoError(t, err)

	result, stats := recommend.Normalize(parsed, domain.ModeQuestion)
	assert.Equal(t, recommend.Stats{Received: 5, Kept: 2, Dropped: 3}, stats)
	assert.Equal(t, "type Query { x: Int }", result.Schema)
	assert.Equal(t, "extra", result.Extra["notes"])

	require.Len(t, result.Recommendations, 2)
	first := result.Recommendations[0]
	assert.Equal(t, "two-sum", first.Identifier)
	assert.Equal(t, domain.DifficultyEasy, first.Difficulty)
	assert.Equal(t, "https://leetcode.com/problems/two-sum/", first.Link)
	assert.Equal(t, "hash map", first.Fields["hint"])
	assert.Equal(t, "lru-cache", result.Recommendations[1].Identifier)

	body, err := json.Marshal(result)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "extra", decoded["notes"])
	recs := decoded["recommendations"].([]any)
	assert.Equal(t, "https://leetcode.com/problems/two-sum/", recs[0].(map[string]any)["leetcodeUrl"])
}

func TestNormalize_TagMode(t *testing.T) {
	parsed, err := recommend.RecoverJSON(`{"schema":{"sdl":"x"},"recommendations":[
		{"tagSlug":"graph","tagName":"Graph","difficulty":"HARD","count":3,"reason":"focus"},
		{"tagName":"Missing slug","difficulty":"EASY","count":2}
	]}`)
	require.NoError(t, err)

	result, stats := recommend.Normalize(parsed, domain.ModeTag)
	assert.Equal(t, 1, stats.Kept)
	assert.Equal(t, 1, stats.Dropped)
	assert.Equal(t, `{"sdl":"x"}`, result.Schema)

	rec := result.Recommendations[0]
	assert.Equal(t, "graph", rec.Identifier)
	assert.Equal(t, "Graph", rec.Title)
	assert.Equal(t, 3, rec.Count)
	assert.Equal(t, "https://leetcode.com/problemset/?topicSlugs=graph&difficulty=Hard", rec.Link)

	body, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"tagSlug":"graph","tagName":"Graph","difficulty":"HARD","count":3,"reason":"focus",
		"leetcodeUrl":"https://leetcode.com/problemset/?topicSlugs=graph&difficulty=Hard"}`, string(body))
}

func TestNormalize_MissingRecommendations(t *testing.T) {
	result, stats := recommend.Normalize(map[string]any{}, domain.ModeQuestion)
	assert.Empty(t, result.Recommendations)
	assert.Equal(t, 0, stats.Received)

	body, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{"schema":"","recommendations":[]}`, string(body))
}
