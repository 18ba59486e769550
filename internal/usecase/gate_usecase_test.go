package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"interview-prep-backend/internal/domain"
	"interview-prep-backend/internal/usecase"
	"interview-prep-backend/pkg/supabase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func confirmedUser() *domain.AuthUser {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &domain.AuthUser{ID: "u1", Email: "a@b.co", EmailConfirmedAt: &at}
}

func TestGateResolve(t *testing.T) {
	identity := &domain.Identity{UserID: "u1", Email: "a@b.co", AccessToken: "tok"}

	t.Run("nil identity is unauthenticated without calls", func(t *testing.T) {
		ids, repo := new(MockIdentity), new(MockProfileRepo)
		state, err := usecase.NewGateUsecase(ids, repo).Resolve(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, domain.GateUnauthenticated, state)
		ids.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("rejected token", func(t *testing.T) {
		ids, repo := new(MockIdentity), new(MockProfileRepo)
		ids.On("GetUser", mock.Anything, "tok").Return(nil, &supabase.APIError{Status: 401, Message: "bad jwt"})
		repo.On("FindByID", mock.Anything, "u1").Return(nil, nil).Maybe()

		state, err := usecase.NewGateUsecase(ids, repo).Resolve(context.Background(), identity)
		require.NoError(t, err)
		assert.Equal(t, domain.GateUnauthenticated, state)
	})

	t.Run("identity service outage is an error", func(t *testing.T) {
		ids, repo := new(MockIdentity), new(MockProfileRepo)
		ids.On("GetUser", mock.Anything, "tok").Return(nil, errors.New("dial tcp: refused"))
		repo.On("FindByID", mock.Anything, "u1").Return(nil, nil).Maybe()

		_, err := usecase.NewGateUsecase(ids, repo).Resolve(context.Background(), identity)
		assert.Error(t, err)
	})

	t.Run("unconfirmed email", func(t *testing.T) {
		ids, repo := new(MockIdentity), new(MockProfileRepo)
		ids.On("GetUser", mock.Anything, "tok").Return(&domain.AuthUser{ID: "u1"}, nil)
		repo.On("FindByID", mock.Anything, "u1").Return(nil, nil)

		state, err := usecase.NewGateUsecase(ids, repo).Resolve(context.Background(), identity)
		require.NoError(t, err)
		assert.Equal(t, domain.GateUnverified, state)
		assert.Equal(t, "/verify-email", state.RedirectPath())
		repo.AssertNotCalled(t, "CreateIfMissing", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("profile lookup error needs onboarding", func(t *testing.T) {
		ids, repo := new(MockIdentity), new(MockProfileRepo)
		ids.On("GetUser", mock.Anything, "tok").Return(confirmedUser(), nil)
		repo.On("FindByID", mock.Anything, "u1").Return(nil, errors.New("db down"))

		state, err := usecase.NewGateUsecase(ids, repo).Resolve(context.Background(), identity)
		require.NoError(t, err)
		assert.Equal(t, domain.GateNeedsOnboarding, state)
	})

	t.Run("missing profile is created", func(t *testing.T) {
		ids, repo := new(MockIdentity), new(MockProfileRepo)
		ids.On("GetUser", mock.Anything, "tok").Return(confirmedUser(), nil)
		repo.On("FindByID", mock.Anything, "u1").Return(nil, nil)
		repo.On("CreateIfMissing", mock.Anything, "u1", "a@b.co").Return(nil)

		state, err := usecase.NewGateUsecase(ids, repo).Resolve(context.Background(), identity)
		require.NoError(t, err)
		assert.Equal(t, domain.GateNeedsOnboarding, state)
		assert.Equal(t, "/onboarding", state.RedirectPath())
		repo.AssertExpectations(t)
	})

	t.Run("not onboarded", func(t *testing.T) {
		ids, repo := new(MockIdentity), new(MockProfileRepo)
		ids.On("GetUser", mock.Anything, "tok").Return(confirmedUser(), nil)
		repo.On("FindByID", mock.Anything, "u1").Return(&domain.Profile{ID: "u1"}, nil)

		state, err := usecase.NewGateUsecase(ids, repo).Resolve(context.Background(), identity)
		require.NoError(t, err)
		assert.Equal(t, domain.GateNeedsOnboarding, state)
	})

	t.Run("ready", func(t *testing.T) {
		ids, repo := new(MockIdentity), new(MockProfileRepo)
		ids.On("GetUser", mock.Anything, "tok").Return(confirmedUser(), nil)
		repo.On("FindByID", mock.Anything, "u1").Return(&domain.Profile{ID: "u1", Onboarded: true}, nil)

		state, err := usecase.NewGateUsecase(ids, repo).Resolve(context.Background(), identity)
		require.NoError(t, err)
		assert.Equal(t, domain.GateReady, state)
		assert.Equal(t, "/dashboard", state.RedirectPath())
	})
}
