package usecase_test

import (
	"context"
	"errors"
	"math"
	"net/http"
	"testing"

	"interview-prep-backend/internal/domain"
	"interview-prep-backend/internal/usecase"
	"interview-prep-backend/pkg/leetcode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetQuestion(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to two-sum", func(t *testing.T) {
		catalog := new(MockCatalog)
		catalog.On("Question", mock.Anything, "two-sum").Return(&domain.Question{ID: "1", Slug: "two-sum"}, nil)

		q, err := usecase.NewQuestionUsecase(catalog).GetQuestion(ctx, "  ")
		require.NoError(t, err)
		assert.Equal(t, "1", q.ID)
	})

	t.Run("not found", func(t *testing.T) {
		catalog := new(MockCatalog)
		catalog.On("Question", mock.Anything, "nope").Return(nil, leetcode.ErrQuestionNotFound)

		_, err := usecase.NewQuestionUsecase(catalog).GetQuestion(ctx, "nope")
		appErr := requireAppError(t, err, http.StatusNotFound)
		assert.Equal(t, "Question not found", appErr.Message)
	})

	t.Run("upstream status", func(t *testing.T) {
		catalog := new(MockCatalog)
		catalog.On("Question", mock.Anything, "x").Return(nil, &leetcode.StatusError{Status: 503})

		_, err := usecase.NewQuestionUsecase(catalog).GetQuestion(ctx, "x")
		appErr := requireAppError(t, err, http.StatusInternalServerError)
		assert.Equal(t, "LeetCode responded 503", appErr.Message)
	})
}

func TestRandomIntInclusive(t *testing.T) {
	uc := usecase.NewRandomUsecase()
	for i := 0; i < 200; i++ {
		v, err := uc.IntInclusive(1.2, 4.9)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, int64(2))
		assert.LessOrEqual(t, v, int64(4))
	}

	v, err := uc.IntInclusive(7, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), v)

	lowest := usecase.NewRandomUsecaseWithSource(func(n int64) int64 { return 0 })
	highest := usecase.NewRandomUsecaseWithSource(func(n int64) int64 { return n - 1 })
	v, _ = lowest.IntInclusive(-3.5, 2)
	assert.Equal(t, int64(-3), v)
	v, _ = highest.IntInclusive(-3.5, 2)
	assert.Equal(t, int64(2), v)

	invalid := [][2]float64{
		{5, 1},
		{math.NaN(), 1},
		{0, math.Inf(1)},
		{1.2, 1.8},
		{0, 1 << 60},
	}
	for _, r := range invalid {
		_, err := uc.IntInclusive(r[0], r[1])
		assert.ErrorIs(t, err, domain.ErrInvalidRange, "range %v", r)
	}
}

func TestDashboardGet(t *testing.T) {
	repo := new(MockProfileRepo)
	repo.On("GetByID", mock.Anything, "u1").Return(&domain.Profile{ID: "u1", Email: strPtr("db@b.co"), Onboarded: true}, nil)

	d, err := usecase.NewDashboardUsecase(repo).Get(context.Background(), &domain.Identity{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "u1", d.User.ID)
	assert.Equal(t, "db@b.co", d.User.Email)
	assert.True(t, d.Profile.Onboarded)
}

func TestHealthCheck(t *testing.T) {
	uc := usecase.NewHealthUsecase(map[string]usecase.HealthCheck{
		"database": func(ctx context.Context) error { return nil },
		"redis":    nil,
	})
	status, ok := uc.Check(context.Background())
	assert.True(t, ok)
	assert.Equal(t, map[string]string{"status": "ok", "database": "ok", "redis": "disabled"}, status)

	uc = usecase.NewHealthUsecase(map[string]usecase.HealthCheck{
		"database": func(ctx context.Context) error { return errors.New("down") },
	})
	status, ok = uc.Check(context.Background())
	assert.False(t, ok)
	assert.Equal(t, "degraded", status["status"])
}

func TestUpdateProfile(t *testing.T) {
	repo := new(MockProfileRepo)
	uc := usecase.NewProfileUsecase(repo, usecase.NewValidator())

	bad := domain.OnboardingForm{FullName: "Ada"}
	_, err := uc.UpdateProfile(context.Background(), "u1", &bad)
	requireAppError(t, err, http.StatusBadRequest)

	form := completeForm()
	repo.On("Update", mock.Anything, "u1", mock.Anything).Return(nil)
	repo.On("GetByID", mock.Anything, "u1").Return(&domain.Profile{ID: "u1", FullName: strPtr("Ada Lovelace")}, nil)

	p, err := uc.UpdateProfile(context.Background(), "u1", &form)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", domain.StringValue(p.FullName))
}
