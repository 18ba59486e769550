package leetcode_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"interview-prep-backend/pkg/leetcode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "https://leetcode.com", r.Header.Get("Referer"))
		assert.Equal(t, "https://leetcode.com", r.Header.Get("Origin"))

		var body struct {
			Query     string            `json:"query"`
			Variables map[string]string `json:"variables"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body.Query, "questionData")

		switch body.Variables["titleSlug"] {
		case "two-sum":
			_, _ = w.Write([]byte(`{"data":{"question":{"questionId":"1","title":"Two Sum","titleSlug":"two-sum",
				"content":"<p>x</p>","difficulty":"Easy","likes":10,"dislikes":2,
				"topicTags":[{"name":"Array","slug":"array"}]}}}`))
		default:
			_, _ = w.Write([]byte(`{"data":{"question":null}}`))
		}
	}))
	defer srv.Close()

	c := leetcode.NewClient(srv.URL)

	q, err := c.Question(context.Background(), "two-sum")
	require.NoError(t, err)
	assert.Equal(t, "1", q.ID)
	assert.Equal(t, "two-sum", q.Slug)
	assert.Equal(t, 10, q.Likes)
	require.Len(t, q.TopicTags, 1)
	assert.Equal(t, "array", q.TopicTags[0].Slug)

	_, err = c.Question(context.Background(), "nope")
	assert.ErrorIs(t, err, leetcode.ErrQuestionNotFound)
}

func TestQuestion_UpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := leetcode.NewClient(srv.URL).Question(context.Background(), "two-sum")
	var statusErr *leetcode.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusForbidden, statusErr.Status)
	assert.Equal(t, "LeetCode responded 403", err.Error())
}

func TestLinks(t *testing.T) {
	assert.Equal(t, "https://leetcode.com/problems/two-sum/", leetcode.ProblemURL("two-sum"))
	assert.Equal(t, "https://leetcode.com/problemset/?topicSlugs=dynamic-programming&difficulty=Hard",
		leetcode.TagFilterURL("dynamic-programming", "HARD"))
	assert.Equal(t, "https://leetcode.com/problemset/?topicSlugs=a%20b%26c&difficulty=Medium",
		leetcode.TagFilterURL("a b&c", "unknown"))
	assert.Equal(t, "Easy", leetcode.DisplayDifficulty("EASY"))
	assert.Equal(t, "Medium", leetcode.DisplayDifficulty(""))
}
