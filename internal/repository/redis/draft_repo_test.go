package redis_test

import (
	"context"
	"testing"
	"time"

	"interview-prep-backend/internal/domain"
	redisrepo "interview-prep-backend/internal/repository/redis"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestDraftRepository_RoundTrip(t *testing.T) {
	mr, client := setup(t)
	repo := redisrepo.NewDraftRepository(client, time.Hour)
	ctx := context.Background()

	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)

	draft := &domain.OnboardingDraft{
		Step: domain.StepFocus,
		Form: domain.OnboardingForm{FullName: "Ada", Focus: []string{"Graphs"}},
	}
	require.NoError(t, repo.Save(ctx, "u1", draft))
	assert.True(t, mr.Exists("onboarding:draft:u1"))
	assert.Equal(t, time.Hour, mr.TTL("onboarding:draft:u1"))

	got, err = repo.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.StepFocus, got.Step)
	assert.Equal(t, []string{"Graphs"}, got.Form.Focus)

	require.NoError(t, repo.Delete(ctx, "u1"))
	assert.False(t, mr.Exists("onboarding:draft:u1"))
}

func TestDraftRepository_Expires(t *testing.T) {
	mr, client := setup(t)
	repo := redisrepo.NewDraftRepository(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "u1", &domain.OnboardingDraft{}))
	mr.FastForward(2 * time.Minute)

	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDraftRepository_CorruptValueIsDiscarded(t *testing.T) {
	mr, client := setup(t)
	repo := redisrepo.NewDraftRepository(client, 0)

	require.NoError(t, mr.Set("onboarding:draft:u1", "not json"))
	got, err := repo.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, mr.Exists("onboarding:draft:u1"))
}
