package recommend

import (
	"encoding/json"
	"strconv"

	"interview-prep-backend/internal/domain"
	"interview-prep-backend/pkg/leetcode"
)

// LinkField is the key added to every recommendation that has an identifier.
const LinkField = "leetcodeUrl"

// Stats counts what normalization did with the model's list.
type Stats struct {
	Received int
	Kept     int
	Dropped  int
}

// Entries returns the recommendations array of a parsed completion. Anything
// other than an array yields an empty list.
func Entries(parsed map[string]any) []any {
	list, ok := parsed["recommendations"].([]any)
	if !ok {
		return []any{}
	}
	return list
}

// AnnotateTag returns a copy of entry with the problem-list filter link for its
// tagSlug and difficulty. Entries without a tagSlug get no link.
func AnnotateTag(entry map[string]any) map[string]any {
	out := clone(entry)
	tag, ok := entry["tagSlug"].(string)
	if !ok || tag == "" {
		return out
	}
	difficulty, _ := entry["difficulty"].(string)
	out[LinkField] = leetcode.TagFilterURL(tag, difficulty)
	return out
}

// AnnotateQuestion returns a copy of entry with the problem link taken from the
// first non-empty of slug and titleSlug. Without either the link key is absent.
func AnnotateQuestion(entry map[string]any) map[string]any {
	out := clone(entry)
	if slug := questionSlug(entry); slug != "" {
		out[LinkField] = leetcode.ProblemURL(slug)
	}
	return out
}

// Normalize annotates every entry and then keeps only those with a non-empty
// identifier and a difficulty in {EASY, MEDIUM, HARD}. Other top-level keys of
// the completion are carried in Extra.
func Normalize(parsed map[string]any, mode domain.RecommendationMode) (domain.RecommendationResult, Stats) {
	entries := Entries(parsed)
	result := domain.RecommendationResult{
		Schema:          schemaString(parsed["schema"]),
		Recommendations: make([]domain.Recommendation, 0, len(entries)),
	}
	for k, v := range parsed {
		if k == "schema" || k == "recommendations" {
			continue
		}
		if result.Extra == nil {
			result.Extra = make(map[string]any)
		}
		result.Extra[k] = v
	}

	stats := Stats{Received: len(entries)}
	for _, e := range entries {
		entry, ok := e.(map[string]any)
		if !ok {
			stats.Dropped++
			continue
		}

		var annotated map[string]any
		if mode == domain.ModeTag {
			annotated = AnnotateTag(entry)
		} else {
			annotated = AnnotateQuestion(entry)
		}

		rec, ok := project(annotated, mode)
		if !ok {
			stats.Dropped++
			continue
		}
		result.Recommendations = append(result.Recommendations, rec)
	}
	stats.Kept = len(result.Recommendations)
	return result, stats
}

func project(fields map[string]any, mode domain.RecommendationMode) (domain.Recommendation, bool) {
	difficulty, _ := fields["difficulty"].(string)
	d := domain.Difficulty(difficulty)
	if !d.IsValid() {
		return domain.Recommendation{}, false
	}

	rec := domain.Recommendation{Difficulty: d, Fields: fields}
	rec.Reason, _ = fields["reason"].(string)
	rec.Link, _ = fields[LinkField].(string)

	if mode == domain.ModeTag {
		rec.Identifier, _ = fields["tagSlug"].(string)
		rec.Title, _ = fields["tagName"].(string)
		rec.Count = intValue(fields["count"])
	} else {
		rec.Identifier = questionSlug(fields)
		rec.Title, _ = fields["title"].(string)
	}
	if rec.Identifier == "" {
		return domain.Recommendation{}, false
	}
	return rec, true
}

func questionSlug(entry map[string]any) string {
	for _, key := range []string{"slug", "titleSlug"} {
		if s, ok := entry[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// schemaString keeps string schemas as-is and encodes anything else as JSON.
func schemaString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		b, err := json.Marshal(s)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

func intValue(v any) int {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
		if f, err := n.Float64(); err == nil {
			return int(f)
		}
	case float64:
		return int(n)
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i
		}
	}
	return 0
}

func clone(m map[string]any) map[string]any {
	out := make(map[string]any, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}
