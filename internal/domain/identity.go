package domain

import (
	"context"
	"time"
)

// Identity is what the auth middleware proves about a caller from a verified access token.
type Identity struct {
	UserID      string
	Email       string
	AccessToken string
}

// AuthUser is the identity service's view of an account.
type AuthUser struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	EmailConfirmedAt *time.Time `json:"email_confirmed_at,omitempty"`
}

func (u *AuthUser) EmailConfirmed() bool {
	return u != nil && u.EmailConfirmedAt != nil && !u.EmailConfirmedAt.IsZero()
}

// Session is a token pair issued by the identity service.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int       `json:"expires_in"`
	TokenType    string    `json:"token_type"`
	User         *AuthUser `json:"user,omitempty"`
}

// IdentityService is the external authentication provider.
type IdentityService interface {
	SignUp(ctx context.Context, email, password, redirectTo string) (*AuthUser, error)
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	RefreshSession(ctx context.Context, refreshToken string) (*Session, error)
	SignOut(ctx context.Context, accessToken string) error
	GetUser(ctx context.Context, accessToken string) (*AuthUser, error)
	ResendSignup(ctx context.Context, email, redirectTo string) error
}

// GateState is where an account stands on the way to the dashboard.
type GateState string

const (
	GateUnauthenticated GateState = "unauthenticated"
	GateUnverified      GateState = "unverified"
	GateNeedsOnboarding GateState = "needs_onboarding"
	GateReady           GateState = "ready"
)

// RedirectPath is the page a client should show for the state.
func (s GateState) RedirectPath() string {
	switch s {
	case GateUnverified:
		return "/verify-email"
	case GateNeedsOnboarding:
		return "/onboarding"
	case GateReady:
		return "/dashboard"
	default:
		return "/login"
	}
}

type GateUsecase interface {
	Resolve(ctx context.Context, identity *Identity) (GateState, error)
}

// SignUpResult tells the client where to go after registration.
type SignUpResult struct {
	Email string `json:"email"`
	Next  string `json:"next"`
}

// LoginResult carries the issued session plus the gate decision for it.
type LoginResult struct {
	Session  *Session  `json:"session"`
	State    GateState `json:"state"`
	Redirect string    `json:"redirect"`
}

type AuthUsecase interface {
	SignUp(ctx context.Context, email, password string) (*SignUpResult, error)
	Login(ctx context.Context, req LoginAttempt) (*LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (*Session, error)
	Logout(ctx context.Context, accessToken string) error
	ResendVerification(ctx context.Context, email string) error
	CurrentUser(ctx context.Context, identity *Identity) (*AuthUser, error)
}

// LoginAttempt bundles credentials with request metadata for auditing.
type LoginAttempt struct {
	Email     string
	Password  string
	IP        string
	UserAgent string
	RequestID string
}
