package supabase_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"interview-prep-backend/pkg/supabase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *supabase.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := supabase.NewClient(supabase.Config{URL: srv.URL + "/", AnonKey: "anon"})
	require.NoError(t, err)
	return c
}

func TestNewClient_RequiresConfig(t *testing.T) {
	_, err := supabase.NewClient(supabase.Config{URL: "http://x"})
	assert.ErrorIs(t, err, supabase.ErrMissingConfig)
}

func TestGetUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "anon", r.Header.Get("apikey"))
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"msg":"invalid JWT"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"u1","email":"a@b.co","email_confirmed_at":"2024-01-02T03:04:05Z"}`))
	})

	user, err := c.GetUser(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.True(t, user.EmailConfirmed())

	_, err = c.GetUser(context.Background(), "bad")
	require.Error(t, err)
	assert.True(t, supabase.IsUnauthorized(err))
	var apiErr *supabase.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid JWT", apiErr.Message)
}

func TestSignUp_SendsRedirect(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/signup", r.URL.Path)
		assert.Equal(t, "http://site/post-login", r.URL.Query().Get("redirect_to"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "new@b.co", body["email"])
		_, _ = w.Write([]byte(`{"id":"u2","email":"new@b.co"}`))
	})

	user, err := c.SignUp(context.Background(), "new@b.co", "Passw0rd!", "http://site/post-login")
	require.NoError(t, err)
	assert.Equal(t, "u2", user.ID)
	assert.False(t, user.EmailConfirmed())
}

func TestSignInWithPassword(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "right" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid login credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"at","refresh_token":"rt","expires_in":3600,"token_type":"bearer","user":{"id":"u1","email":"a@b.co"}}`))
	})

	sess, err := c.SignInWithPassword(context.Background(), "a@b.co", "right")
	require.NoError(t, err)
	assert.Equal(t, "at", sess.AccessToken)
	assert.Equal(t, "u1", sess.User.ID)

	_, err = c.SignInWithPassword(context.Background(), "a@b.co", "wrong")
	var apiErr *supabase.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Invalid login credentials", apiErr.Message)
}

func TestSignOutAndResend(t *testing.T) {
	var paths []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.SignOut(context.Background(), "at"))
	require.NoError(t, c.ResendSignup(context.Background(), "a@b.co", ""))
	assert.Equal(t, []string{"/auth/v1/logout", "/auth/v1/resend"}, paths)
}
