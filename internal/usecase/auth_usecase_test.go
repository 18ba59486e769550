package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"interview-prep-backend/internal/domain"
	"interview-prep-backend/internal/usecase"
	"interview-prep-backend/pkg/security"
	"interview-prep-backend/pkg/supabase"
	"interview-prep-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	ids   *MockIdentity
	gate  *MockGate
	guard *MockGuard
	uc    domain.AuthUsecase
}

func newAuthFixture() *authFixture {
	f := &authFixture{ids: new(MockIdentity), gate: new(MockGate), guard: new(MockGuard)}
	f.uc = usecase.NewAuthUsecase(f.ids, f.gate, f.guard, security.NewNopSecurityLogger(), usecase.NewValidator(), "http://site/")
	return f
}

func TestSignUp(t *testing.T) {
	t.Run("weak password", func(t *testing.T) {
		f := newAuthFixture()
		_, err := f.uc.SignUp(context.Background(), "a@b.co", "password")
		appErr := requireAppError(t, err, http.StatusBadRequest)
		assert.Equal(t, validation.PasswordRuleMessage, appErr.Message)
		f.ids.AssertNotCalled(t, "SignUp", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid email", func(t *testing.T) {
		f := newAuthFixture()
		_, err := f.uc.SignUp(context.Background(), "not-an-email", "Str0ng!pw")
		requireAppError(t, err, http.StatusBadRequest)
	})

	t.Run("normalizes email and redirects to post-login", func(t *testing.T) {
		f := newAuthFixture()
		f.ids.On("SignUp", mock.Anything, "ada@example.com", "Str0ng!pw", "http://site/post-login").
			Return(&domain.AuthUser{ID: "u1", Email: "ada@example.com"}, nil)

		res, err := f.uc.SignUp(context.Background(), "  Ada@Example.COM ", "Str0ng!pw")
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", res.Email)
		assert.Equal(t, "verify-email", res.Next)
	})

	t.Run("already registered goes to verify-email", func(t *testing.T) {
		f := newAuthFixture()
		f.ids.On("SignUp", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &supabase.APIError{Status: 422, Message: "User already registered"})

		res, err := f.uc.SignUp(context.Background(), "a@b.co", "Str0ng!pw")
		require.NoError(t, err)
		assert.Equal(t, "verify-email", res.Next)
	})
}

func TestLogin(t *testing.T) {
	attempt := domain.LoginAttempt{Email: "A@b.co", Password: "pw", IP: "1.2.3.4", UserAgent: "ua", RequestID: "r1"}

	t.Run("blocked", func(t *testing.T) {
		f := newAuthFixture()
		f.guard.On("IsBlocked", mock.Anything, "a@b.co").Return(true, nil)

		_, err := f.uc.Login(context.Background(), attempt)
		requireAppError(t, err, http.StatusTooManyRequests)
		f.ids.AssertNotCalled(t, "SignInWithPassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("wrong password is recorded", func(t *testing.T) {
		f := newAuthFixture()
		f.guard.On("IsBlocked", mock.Anything, "a@b.co").Return(false, nil)
		f.ids.On("SignInWithPassword", mock.Anything, "a@b.co", "pw").
			Return(nil, &supabase.APIError{Status: 400, Message: "Invalid login credentials"})
		f.guard.On("RecordFailedAttempt", mock.Anything, "a@b.co", "1.2.3.4", "ua", "r1").Return(false, 1, nil)

		_, err := f.uc.Login(context.Background(), attempt)
		appErr := requireAppError(t, err, http.StatusUnauthorized)
		assert.Equal(t, "Invalid email or password", appErr.Message)
		f.guard.AssertExpectations(t)
	})

	t.Run("threshold reached blocks", func(t *testing.T) {
		f := newAuthFixture()
		f.guard.On("IsBlocked", mock.Anything, "a@b.co").Return(false, nil)
		f.ids.On("SignInWithPassword", mock.Anything, "a@b.co", "pw").
			Return(nil, &supabase.APIError{Status: 400, Message: "Invalid login credentials"})
		f.guard.On("RecordFailedAttempt", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(true, 5, nil)

		_, err := f.uc.Login(context.Background(), attempt)
		requireAppError(t, err, http.StatusTooManyRequests)
	})

	t.Run("unconfirmed email is not counted", func(t *testing.T) {
		f := newAuthFixture()
		f.guard.On("IsBlocked", mock.Anything, "a@b.co").Return(false, nil)
		f.ids.On("SignInWithPassword", mock.Anything, "a@b.co", "pw").
			Return(nil, &supabase.APIError{Status: 400, Message: "Email not confirmed"})

		_, err := f.uc.Login(context.Background(), attempt)
		appErr := requireAppError(t, err, http.StatusUnauthorized)
		assert.Equal(t, "Email not confirmed", appErr.Message)
		f.guard.AssertNotCalled(t, "RecordFailedAttempt", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("transport failure", func(t *testing.T) {
		f := newAuthFixture()
		f.guard.On("IsBlocked", mock.Anything, "a@b.co").Return(false, errors.New("redis down"))
		f.ids.On("SignInWithPassword", mock.Anything, "a@b.co", "pw").Return(nil, errors.New("timeout"))

		_, err := f.uc.Login(context.Background(), attempt)
		requireAppError(t, err, http.StatusInternalServerError)
	})

	t.Run("success resolves gate", func(t *testing.T) {
		f := newAuthFixture()
		session := &domain.Session{AccessToken: "at", RefreshToken: "rt", User: &domain.AuthUser{ID: "u1", Email: "a@b.co"}}
		f.guard.On("IsBlocked", mock.Anything, "a@b.co").Return(false, nil)
		f.ids.On("SignInWithPassword", mock.Anything, "a@b.co", "pw").Return(session, nil)
		f.guard.On("ClearAttempts", mock.Anything, "a@b.co").Return(nil)
		f.gate.On("Resolve", mock.Anything, &domain.Identity{UserID: "u1", Email: "a@b.co", AccessToken: "at"}).
			Return(domain.GateReady, nil)

		res, err := f.uc.Login(context.Background(), attempt)
		require.NoError(t, err)
		assert.Equal(t, "at", res.Session.AccessToken)
		assert.Equal(t, domain.GateReady, res.State)
		assert.Equal(t, "/dashboard", res.Redirect)
		f.guard.AssertExpectations(t)
	})
}

func TestRefreshLogoutResendMe(t *testing.T) {
	f := newAuthFixture()
	f.ids.On("RefreshSession", mock.Anything, "bad").Return(nil, &supabase.APIError{Status: 400, Message: "Invalid Refresh Token"})
	_, err := f.uc.Refresh(context.Background(), "bad")
	requireAppError(t, err, http.StatusUnauthorized)

	_, err = f.uc.Refresh(context.Background(), " ")
	requireAppError(t, err, http.StatusBadRequest)

	f.ids.On("SignOut", mock.Anything, "expired").Return(&supabase.APIError{Status: 401})
	assert.NoError(t, f.uc.Logout(context.Background(), "expired"))

	f.ids.On("ResendSignup", mock.Anything, "a@b.co", "http://site/post-login").Return(&supabase.APIError{Status: 400, Message: "unknown"})
	assert.NoError(t, f.uc.ResendVerification(context.Background(), "A@B.co"))

	f.ids.On("GetUser", mock.Anything, "tok").Return(&domain.AuthUser{ID: "u1"}, nil)
	user, err := f.uc.CurrentUser(context.Background(), &domain.Identity{UserID: "u1", AccessToken: "tok"})
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	_, err = f.uc.CurrentUser(context.Background(), nil)
	requireAppError(t, err, http.StatusUnauthorized)
}
