package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"interview-prep-backend/internal/domain"
	"interview-prep-backend/pkg/apperror"
	"interview-prep-backend/pkg/logger"
	"interview-prep-backend/pkg/security"
	"interview-prep-backend/pkg/supabase"
	"interview-prep-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// LoginGuard counts failed sign-ins and locks out abused accounts.
type LoginGuard interface {
	IsBlocked(ctx context.Context, email string) (bool, error)
	RecordFailedAttempt(ctx context.Context, email, ip, userAgent, requestID string) (bool, int, error)
	ClearAttempts(ctx context.Context, email string) error
}

const (
	msgInvalidCredentials = "Invalid email or password"
	msgEmailNotConfirmed  = "Email not confirmed"
	msgLoginBlocked       = "Too many failed login attempts. Please try again later."
	msgAuthUnavailable    = "Authentication service unavailable"

	nextVerifyEmail = "verify-email"
	nextLogin       = "login"
)

type authUsecase struct {
	identity  domain.IdentityService
	gate      domain.GateUsecase
	guard     LoginGuard
	secLogger *security.SecurityLogger
	validate  *validator.Validate
	siteURL   string
}

func NewAuthUsecase(
	identity domain.IdentityService,
	gate domain.GateUsecase,
	guard LoginGuard,
	secLogger *security.SecurityLogger,
	validate *validator.Validate,
	siteURL string,
) domain.AuthUsecase {
	return &authUsecase{
		identity:  identity,
		gate:      gate,
		guard:     guard,
		secLogger: secLogger,
		validate:  validate,
		siteURL:   strings.TrimRight(siteURL, "/"),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *authUsecase) redirectTo() string {
	return u.siteURL + "/post-login"
}

func (u *authUsecase) checkEmail(email string) error {
	if err := u.validate.Var(email, "required,email"); err != nil {
		return apperror.BadRequest("A valid email is required")
	}
	return nil
}

func (u *authUsecase) SignUp(ctx context.Context, email, password string) (*domain.SignUpResult, error) {
	email = normalizeEmail(email)
	if err := u.checkEmail(email); err != nil {
		return nil, err
	}
	if !validation.IsStrongPassword(password) {
		return nil, apperror.BadRequest(validation.PasswordRuleMessage)
	}

	user, err := u.identity.SignUp(ctx, email, password, u.redirectTo())
	if err != nil {
		var apiErr *supabase.APIError
		if errors.As(err, &apiErr) {
			// Existing accounts are sent to verification rather than reported, so
			// the endpoint does not reveal which emails are registered.
			if strings.Contains(strings.ToLower(apiErr.Message), "already") {
				return &domain.SignUpResult{Email: email, Next: nextVerifyEmail}, nil
			}
			if apiErr.Status == http.StatusTooManyRequests {
				return nil, apperror.TooManyRequests(apiErr.Message)
			}
			if apiErr.Status < http.StatusInternalServerError {
				return nil, apperror.BadRequest(apiErr.Message)
			}
		}
		return nil, apperror.New(http.StatusInternalServerError, msgAuthUnavailable, err)
	}

	u.secLogger.Log(ctx, security.SecurityEvent{
		Event:        security.EventSignup,
		SubjectType:  "email",
		SubjectValue: security.MaskEmail(email),
	})

	next := nextVerifyEmail
	if user.EmailConfirmed() {
		next = nextLogin
	}
	return &domain.SignUpResult{Email: email, Next: next}, nil
}

func (u *authUsecase) Login(ctx context.Context, req domain.LoginAttempt) (*domain.LoginResult, error) {
	email := normalizeEmail(req.Email)
	if err := u.checkEmail(email); err != nil {
		return nil, err
	}
	if req.Password == "" {
		return nil, apperror.BadRequest("Password is required")
	}

	blocked, err := u.guard.IsBlocked(ctx, email)
	if err != nil {
		logger.Log.Warn("Login tracker unavailable", "error", err)
	}
	if blocked {
		u.secLogger.LogLoginBlocked(ctx, email, req.IP, req.UserAgent, req.RequestID)
		return nil, apperror.TooManyRequests(msgLoginBlocked)
	}

	session, err := u.identity.SignInWithPassword(ctx, email, req.Password)
	if err != nil {
		return nil, u.loginFailure(ctx, email, req, err)
	}

	if err := u.guard.ClearAttempts(ctx, email); err != nil {
		logger.Log.Warn("Failed to clear login attempts", "error", err)
	}

	result := &domain.LoginResult{Session: session, State: domain.GateNeedsOnboarding}
	if session.User != nil {
		u.secLogger.LogLoginSuccess(ctx, session.User.ID, req.IP, req.RequestID)
		state, err := u.gate.Resolve(ctx, &domain.Identity{
			UserID:      session.User.ID,
			Email:       session.User.Email,
			AccessToken: session.AccessToken,
		})
		if err != nil {
			logger.Log.Warn("Gate resolution failed after login", "user_id", session.User.ID, "error", err)
		} else {
			result.State = state
		}
	}
	result.Redirect = result.State.RedirectPath()
	return result, nil
}

func (u *authUsecase) loginFailure(ctx context.Context, email string, req domain.LoginAttempt, err error) error {
	var apiErr *supabase.APIError
	if !errors.As(err, &apiErr) || apiErr.Status >= http.StatusInternalServerError {
		return apperror.New(http.StatusInternalServerError, msgAuthUnavailable, err)
	}
	if apiErr.Message == msgEmailNotConfirmed {
		return apperror.Unauthorized(msgEmailNotConfirmed)
	}

	blocked, _, trackErr := u.guard.RecordFailedAttempt(ctx, email, req.IP, req.UserAgent, req.RequestID)
	if trackErr != nil {
		logger.Log.Warn("Failed to record login attempt", "error", trackErr)
	}
	if blocked {
		return apperror.TooManyRequests(msgLoginBlocked)
	}
	return apperror.Unauthorized(msgInvalidCredentials)
}

func (u *authUsecase) Refresh(ctx context.Context, refreshToken string) (*domain.Session, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, apperror.BadRequest("Refresh token is required")
	}
	session, err := u.identity.RefreshSession(ctx, refreshToken)
	if err != nil {
		var apiErr *supabase.APIError
		if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError {
			return nil, apperror.Unauthorized("Invalid refresh token")
		}
		return nil, apperror.New(http.StatusInternalServerError, msgAuthUnavailable, err)
	}
	return session, nil
}

func (u *authUsecase) Logout(ctx context.Context, accessToken string) error {
	err := u.identity.SignOut(ctx, accessToken)
	if err == nil || errors.Is(err, domain.ErrUnauthenticated) {
		return nil
	}
	return apperror.New(http.StatusInternalServerError, msgAuthUnavailable, err)
}

func (u *authUsecase) ResendVerification(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if err := u.checkEmail(email); err != nil {
		return err
	}
	err := u.identity.ResendSignup(ctx, email, u.redirectTo())
	if err == nil {
		return nil
	}
	var apiErr *supabase.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status == http.StatusTooManyRequests {
			return apperror.TooManyRequests("Please wait before requesting another email")
		}
		if apiErr.Status < http.StatusInternalServerError {
			// Unknown or already confirmed addresses look the same as success.
			logger.Log.Info("Resend verification rejected", "status", apiErr.Status)
			return nil
		}
	}
	return apperror.New(http.StatusInternalServerError, msgAuthUnavailable, err)
}

func (u *authUsecase) CurrentUser(ctx context.Context, identity *domain.Identity) (*domain.AuthUser, error) {
	if identity == nil {
		return nil, apperror.Unauthorized("Not authenticated")
	}
	user, err := u.identity.GetUser(ctx, identity.AccessToken)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return nil, apperror.Unauthorized("Not authenticated")
		}
		return nil, apperror.New(http.StatusInternalServerError, msgAuthUnavailable, err)
	}
	return user, nil
}
