package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"interview-prep-backend/internal/domain"
	"interview-prep-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func backendProfile() *domain.Profile {
	return &domain.Profile{
		ID:              "u1",
		TargetRole:      strPtr("SWE - Backend"),
		ExperienceLevel: strPtr("Mid (2–5y)"),
		FocusTopics:     []string{"Graphs", "Dynamic Programming"},
		Onboarded:       true,
	}
}

const proseWrappedCompletion = `Sure! {"schema":"...","recommendations":[{"slug":"two-sum","title":"Two Sum","difficulty":"EASY","reason":"warm-up"}]} Hope this helps!`

func TestRecommendationGenerate_Success(t *testing.T) {
	repo, llm := new(MockProfileRepo), new(MockCompleter)
	repo.On("GetByID", mock.Anything, "u1").Return(backendProfile(), nil)
	llm.On("Complete", mock.Anything, mock.Anything, mock.MatchedBy(func(user string) bool {
		return strings.HasPrefix(user, "Generate JSON for: ") && strings.Contains(user, `"target_role":"SWE - Backend"`)
	})).Return(proseWrappedCompletion, nil)

	result, err := usecase.NewRecommendationUsecase(repo, llm).Generate(context.Background(), "u1", "")
	require.NoError(t, err)
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, "https://leetcode.com/problems/two-sum/", result.Recommendations[0].Link)

	body, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{"schema":"...","recommendations":[{"slug":"two-sum","title":"Two Sum","difficulty":"EASY",
		"reason":"warm-up","leetcodeUrl":"https://leetcode.com/problems/two-sum/"}]}`, string(body))
	llm.AssertNumberOfCalls(t, "Complete", 1)
}

func TestRecommendationGenerate_Failures(t *testing.T) {
	t.Run("unauthenticated", func(t *testing.T) {
		repo, llm := new(MockProfileRepo), new(MockCompleter)
		_, err := usecase.NewRecommendationUsecase(repo, llm).Generate(context.Background(), "", domain.ModeQuestion)
		requireAppError(t, err, http.StatusUnauthorized)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("unknown mode", func(t *testing.T) {
		repo, llm := new(MockProfileRepo), new(MockCompleter)
		_, err := usecase.NewRecommendationUsecase(repo, llm).Generate(context.Background(), "u1", "mixed")
		requireAppError(t, err, http.StatusBadRequest)
	})

	t.Run("profile missing", func(t *testing.T) {
		repo, llm := new(MockProfileRepo), new(MockCompleter)
		repo.On("GetByID", mock.Anything, "u1").Return(nil, domain.ErrProfileNotFound)

		_, err := usecase.NewRecommendationUsecase(repo, llm).Generate(context.Background(), "u1", domain.ModeQuestion)
		appErr := requireAppError(t, err, http.StatusNotFound)
		assert.Equal(t, "Profile not found", appErr.Message)
		llm.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("repository error fails closed", func(t *testing.T) {
		repo, llm := new(MockProfileRepo), new(MockCompleter)
		repo.On("GetByID", mock.Anything, "u1").Return(nil, errors.New("connection reset"))

		_, err := usecase.NewRecommendationUsecase(repo, llm).Generate(context.Background(), "u1", domain.ModeTag)
		requireAppError(t, err, http.StatusNotFound)
		llm.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("upstream failure", func(t *testing.T) {
		repo, llm := new(MockProfileRepo), new(MockCompleter)
		repo.On("GetByID", mock.Anything, "u1").Return(backendProfile(), nil)
		llm.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("502 from provider"))

		_, err := usecase.NewRecommendationUsecase(repo, llm).Generate(context.Background(), "u1", domain.ModeQuestion)
		requireAppError(t, err, http.StatusInternalServerError)
		assert.ErrorIs(t, err, domain.ErrUpstreamTransport)
		llm.AssertNumberOfCalls(t, "Complete", 1)
	})

	t.Run("unparsable completion", func(t *testing.T) {
		repo, llm := new(MockProfileRepo), new(MockCompleter)
		repo.On("GetByID", mock.Anything, "u1").Return(backendProfile(), nil)
		llm.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("no json here", nil)

		_, err := usecase.NewRecommendationUsecase(repo, llm).Generate(context.Background(), "u1", domain.ModeQuestion)
		appErr := requireAppError(t, err, http.StatusBadGateway)
		assert.Equal(t, "LLM returned invalid JSON", appErr.Message)
		assert.ErrorIs(t, err, domain.ErrInvalidCompletionFormat)
	})
}

func TestRecommendationGenerate_TagMode(t *testing.T) {
	repo, llm := new(MockProfileRepo), new(MockCompleter)
	repo.On("GetByID", mock.Anything, "u1").Return(backendProfile(), nil)
	llm.On("Complete", mock.Anything, mock.MatchedBy(func(system string) bool {
		return strings.Contains(system, "tagSlug")
	}), mock.Anything).Return(`{"schema":"s","recommendations":[{"tagSlug":"graph","tagName":"Graph","difficulty":"HARD","count":4,"reason":"r"}]}`, nil)

	result, err := usecase.NewRecommendationUsecase(repo, llm).Generate(context.Background(), "u1", domain.ModeTag)
	require.NoError(t, err)
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, "https://leetcode.com/problemset/?topicSlugs=graph&difficulty=Hard", result.Recommendations[0].Link)
}
