// Package leetcode queries the public LeetCode GraphQL endpoint and builds problem links.
package leetcode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"interview-prep-backend/internal/domain"
)

const (
	DefaultGraphQLURL = "https://leetcode.com/graphql"
	siteOrigin        = "https://leetcode.com"
)

const questionQuery = `query questionData($titleSlug: String!) {
  question(titleSlug: $titleSlug) {
    questionId
    title
    titleSlug
    content
    difficulty
    likes
    dislikes
    topicTags { name slug }
  }
}`

var ErrQuestionNotFound = fmt.Errorf("leetcode: %w", domain.ErrQuestionNotFound)

// StatusError reports a non-2xx answer from the GraphQL endpoint.
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return "LeetCode responded " + strconv.Itoa(e.Status)
}

type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultGraphQLURL
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type questionResponse struct {
	Data struct {
		Question *struct {
			QuestionID string `json:"questionId"`
			Title      string `json:"title"`
			TitleSlug  string `json:"titleSlug"`
			Content    string `json:"content"`
			Difficulty string `json:"difficulty"`
			Likes      int    `json:"likes"`
			Dislikes   int    `json:"dislikes"`
			TopicTags  []struct {
				Name string `json:"name"`
				Slug string `json:"slug"`
			} `json:"topicTags"`
		} `json:"question"`
	} `json:"data"`
}

// Question fetches one problem by slug. A null question yields ErrQuestionNotFound.
func (c *Client) Question(ctx context.Context, slug string) (*domain.Question, error) {
	payload, err := json.Marshal(graphQLRequest{
		Query:     questionQuery,
		Variables: map[string]any{"titleSlug": slug},
	})
	if err != nil {
		return nil, fmt.Errorf("leetcode: encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("leetcode: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Referer", siteOrigin)
	req.Header.Set("Origin", siteOrigin)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("leetcode: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Status: resp.StatusCode}
	}

	var out questionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("leetcode: decode response: %w", err)
	}
	q := out.Data.Question
	if q == nil {
		return nil, ErrQuestionNotFound
	}

	tags := make([]domain.TopicTag, 0, len(q.TopicTags))
	for _, t := range q.TopicTags {
		tags = append(tags, domain.TopicTag{Name: t.Name, Slug: t.Slug})
	}
	return &domain.Question{
		ID:         q.QuestionID,
		Title:      q.Title,
		Slug:       q.TitleSlug,
		Content:    q.Content,
		Difficulty: q.Difficulty,
		Likes:      q.Likes,
		Dislikes:   q.Dislikes,
		TopicTags:  tags,
	}, nil
}

// ProblemURL is the canonical page of a problem.
func ProblemURL(slug string) string {
	return siteOrigin + "/problems/" + slug + "/"
}

// DisplayDifficulty maps EASY and HARD to their title-case form; anything else is Medium.
func DisplayDifficulty(d string) string {
	switch d {
	case "EASY":
		return "Easy"
	case "HARD":
		return "Hard"
	default:
		return "Medium"
	}
}

// TagFilterURL links to the problem list filtered by topic and difficulty.
func TagFilterURL(tagSlug, difficulty string) string {
	return siteOrigin + "/problemset/?topicSlugs=" + encodeURIComponent(tagSlug) +
		"&difficulty=" + DisplayDifficulty(difficulty)
}

// encodeURIComponent escapes like the browser function of the same name, which
// leaves !'()*-._~ alone and uses %20 for spaces.
func encodeURIComponent(s string) string {
	escaped := url.QueryEscape(s)
	escaped = strings.ReplaceAll(escaped, "+", "%20")
	for enc, raw := range map[string]string{"%21": "!", "%27": "'", "%28": "(", "%29": ")", "%2A": "*"} {
		escaped = strings.ReplaceAll(escaped, enc, raw)
	}
	return escaped
}
