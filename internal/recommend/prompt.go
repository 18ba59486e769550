// Package recommend holds the pure steps of recommendation generation: prompt
// construction, recovery of the model's JSON object and normalization of the
// recommendation list.
package recommend

import (
	"encoding/json"
	"fmt"

	"interview-prep-backend/internal/domain"
)

// UserPrefix precedes the serialized profile and guidance in the user turn.
const UserPrefix = "Generate JSON for: "

// Prompt is the two-turn input of a completion call.
type Prompt struct {
	System string
	User   string
}

// promptProfile is the fixed projection of a profile that is shown to the model.
type promptProfile struct {
	ID              string   `json:"id"`
	Email           *string  `json:"email"`
	FullName        *string  `json:"full_name"`
	TargetRole      *string  `json:"target_role"`
	ExperienceLevel *string  `json:"experience_level"`
	FocusTopics     []string `json:"focus_topics"`
	Strengths       *string  `json:"strengths"`
	Challenges      *string  `json:"challenges"`
}

type promptPayload struct {
	Profile  promptProfile   `json:"profile"`
	Guidance domain.Guidance `json:"guidance"`
}

const tagSystemPrompt = `You are a senior interview coach.
Given a user's profile, output a single JSON object with exactly these top-level keys:
1) "schema": GraphQL SDL named "InterviewPrep" with:
   enum Difficulty { EASY MEDIUM HARD }
   type Recommendation { tagSlug: String!, tagName: String!, difficulty: Difficulty!, count: Int!, reason: String! }
   type Query { recommendedProblems: [Recommendation!]! }
2) "recommendations": %d–%d items mixing tags and difficulty tailored to the profile.
   Each item has exactly the fields tagSlug, tagName, difficulty, count, reason.
   difficulty is one of EASY, MEDIUM, HARD.
   Use real LeetCode tag slugs (e.g., "two-pointers","binary-search","dynamic-programming","graph","heap","sliding-window","tree","trie","backtracking","greedy").
   The sum of all counts must not exceed guidance.maxTotalCount.
Return a single JSON object ONLY. No markdown, no prose.`

const questionSystemPrompt = `You are a senior interview coach.
Given a user's profile, output a single JSON object with exactly these top-level keys:
1) "schema": GraphQL SDL named "InterviewPrep" with:
   enum Difficulty { EASY MEDIUM HARD }
   type Recommendation { slug: String!, title: String!, difficulty: Difficulty!, reason: String! }
   type Query { recommendedProblems: [Recommendation!]! }
2) "recommendations": %d–%d specific LeetCode problems tailored to the profile.
   Each item has exactly the fields slug, title, difficulty, reason.
   slug is the real LeetCode problem slug (e.g., "two-sum", "merge-intervals", "course-schedule").
   difficulty is one of EASY, MEDIUM, HARD.
   Do not include tag or count fields.
Return a single JSON object ONLY. No markdown, no prose.`

// ItemRange is the number of recommendations requested for a mode.
func ItemRange(mode domain.RecommendationMode) (lo, hi int) {
	if mode == domain.ModeTag {
		return 6, 10
	}
	return 8, 12
}

// BuildPrompt fills the template for req.Mode. An empty mode means question mode.
func BuildPrompt(req domain.RecommendationRequest) (Prompt, error) {
	if req.Profile == nil {
		return Prompt{}, domain.ErrProfileNotFound
	}

	mode, ok := domain.ParseRecommendationMode(string(req.Mode))
	if !ok {
		return Prompt{}, fmt.Errorf("recommend: unknown mode %q", req.Mode)
	}

	template := questionSystemPrompt
	if mode == domain.ModeTag {
		template = tagSystemPrompt
	}
	lo, hi := ItemRange(mode)

	p := req.Profile
	topics := p.FocusTopics
	if topics == nil {
		topics = []string{}
	}
	payload, err := json.Marshal(promptPayload{
		Profile: promptProfile{
			ID:              p.ID,
			Email:           p.Email,
			FullName:        p.FullName,
			TargetRole:      p.TargetRole,
			ExperienceLevel: p.ExperienceLevel,
			FocusTopics:     topics,
			Strengths:       p.Strengths,
			Challenges:      p.Challenges,
		},
		Guidance: req.Guidance,
	})
	if err != nil {
		return Prompt{}, fmt.Errorf("recommend: encode payload: %w", err)
	}

	return Prompt{
		System: fmt.Sprintf(template, lo, hi),
		User:   UserPrefix + string(payload),
	}, nil
}
