package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"interview-prep-backend/internal/domain"
)

// Config is read once at startup; a Client is shared by every request.
type Config struct {
	URL     string
	AnonKey string
	Timeout time.Duration
}

// Client talks to the GoTrue REST API of a Supabase project.
type Client struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
}

var ErrMissingConfig = errors.New("supabase: url and anon key are required")

// APIError is a non-2xx answer from the auth service.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("supabase: %d %s", e.Status, e.Message)
}

// Is lets a rejected token match domain.ErrUnauthenticated.
func (e *APIError) Is(target error) bool {
	return target == domain.ErrUnauthenticated &&
		(e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden)
}

// IsUnauthorized reports whether err means the supplied token or credentials were rejected.
func IsUnauthorized(err error) bool {
	return errors.Is(err, domain.ErrUnauthenticated)
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.URL == "" || cfg.AnonKey == "" {
		return nil, ErrMissingConfig
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/") + "/auth/v1",
		anonKey:    cfg.AnonKey,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type userPayload struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	EmailConfirmedAt *time.Time `json:"email_confirmed_at"`
	ConfirmedAt      *time.Time `json:"confirmed_at"`
}

func (u *userPayload) toDomain() *domain.AuthUser {
	confirmed := u.EmailConfirmedAt
	if confirmed == nil {
		confirmed = u.ConfirmedAt
	}
	return &domain.AuthUser{ID: u.ID, Email: u.Email, EmailConfirmedAt: confirmed}
}

type sessionPayload struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"`
	TokenType    string       `json:"token_type"`
	User         *userPayload `json:"user"`
}

func (s *sessionPayload) toDomain() *domain.Session {
	out := &domain.Session{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresIn:    s.ExpiresIn,
		TokenType:    s.TokenType,
	}
	if s.User != nil {
		out.User = s.User.toDomain()
	}
	return out
}

// SignUp registers an email/password account. The confirmation mail links to redirectTo.
func (c *Client) SignUp(ctx context.Context, email, password, redirectTo string) (*domain.AuthUser, error) {
	body := map[string]any{"email": email, "password": password}
	path := "/signup"
	if redirectTo != "" {
		path += "?redirect_to=" + url.QueryEscape(redirectTo)
	}

	// Depending on project settings the answer is either a bare user or a session.
	var raw struct {
		userPayload
		User *userPayload `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, path, "", body, &raw); err != nil {
		return nil, err
	}
	if raw.User != nil {
		return raw.User.toDomain(), nil
	}
	return raw.userPayload.toDomain(), nil
}

func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error) {
	var out sessionPayload
	body := map[string]any{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/token?grant_type=password", "", body, &out); err != nil {
		return nil, err
	}
	return out.toDomain(), nil
}

func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (*domain.Session, error) {
	var out sessionPayload
	body := map[string]any{"refresh_token": refreshToken}
	if err := c.do(ctx, http.MethodPost, "/token?grant_type=refresh_token", "", body, &out); err != nil {
		return nil, err
	}
	return out.toDomain(), nil
}

func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	return c.do(ctx, http.MethodPost, "/logout", accessToken, nil, nil)
}

// GetUser resolves an access token to its account. Rejected tokens yield an *APIError with 401.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*domain.AuthUser, error) {
	var out userPayload
	if err := c.do(ctx, http.MethodGet, "/user", accessToken, nil, &out); err != nil {
		return nil, err
	}
	return out.toDomain(), nil
}

// ResendSignup re-sends the signup confirmation mail.
func (c *Client) ResendSignup(ctx context.Context, email, redirectTo string) error {
	body := map[string]any{"type": "signup", "email": email}
	path := "/resend"
	if redirectTo != "" {
		path += "?redirect_to=" + url.QueryEscape(redirectTo)
	}
	return c.do(ctx, http.MethodPost, path, "", body, nil)
}

func (c *Client) do(ctx context.Context, method, path, bearer string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("supabase: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("supabase: build request: %w", err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("supabase: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("supabase: decode response: %w", err)
	}
	return nil
}

// readErrorMessage picks the human message out of the several error shapes GoTrue uses.
func readErrorMessage(r io.Reader) string {
	var errResp struct {
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		ErrorDescription string `json:"error_description"`
		Error            string `json:"error"`
	}
	data, _ := io.ReadAll(io.LimitReader(r, 64<<10))
	if err := json.Unmarshal(data, &errResp); err != nil {
		return strings.TrimSpace(string(data))
	}
	for _, m := range []string{errResp.Msg, errResp.ErrorDescription, errResp.Message, errResp.Error} {
		if m != "" {
			return m
		}
	}
	return ""
}
