package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"interview-prep-backend/internal/delivery/http/response"
	"interview-prep-backend/internal/domain"
	"interview-prep-backend/pkg/auth"
	"interview-prep-backend/pkg/logger"
	"interview-prep-backend/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenCookie is the cookie the frontend keeps the session token in.
const AccessTokenCookie = "sb-access-token"

const msgNotAuthenticated = "Not authenticated"

// AuthConfig selects how access tokens are verified. HS256 tokens need
// JWTSecret; RS256 tokens are checked against the JWKS provider.
type AuthConfig struct {
	JWTSecret string
	JWKS      *auth.Provider
	SecLogger *security.SecurityLogger
}

// AuthMiddleware verifies the access token locally and stores the caller's
// domain.Identity. No repository is consulted.
func AuthMiddleware(cfg AuthConfig) gin.HandlerFunc {
	keyFunc := func(token *jwt.Token) (interface{}, error) {
		switch token.Method.(type) {
		case *jwt.SigningMethodHMAC:
			if cfg.JWTSecret == "" {
				return nil, errors.New("HS256 token received but SUPABASE_JWT_SECRET is not configured")
			}
			return []byte(cfg.JWTSecret), nil
		case *jwt.SigningMethodRSA:
			if cfg.JWKS == nil {
				return nil, errors.New("RS256 token received but no JWKS provider is configured")
			}
			return cfg.JWKS.KeyFunc(token)
		default:
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
	}

	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			reject(c, cfg.SecLogger, "missing_token")
			return
		}

		token, err := jwt.Parse(tokenString, keyFunc,
			jwt.WithValidMethods([]string{"HS256", "RS256"}),
			jwt.WithExpirationRequired(),
		)
		if err != nil || !token.Valid {
			logger.Log.Debug("Token validation failed", "error", err)
			reject(c, cfg.SecLogger, "invalid_token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			reject(c, cfg.SecLogger, "invalid_claims")
			return
		}
		sub, _ := claims["sub"].(string)
		if sub == "" {
			reject(c, cfg.SecLogger, "missing_subject")
			return
		}
		email, _ := claims["email"].(string)

		c.Set(string(domain.KeyIdentity), &domain.Identity{
			UserID:      sub,
			Email:       email,
			AccessToken: tokenString,
		})
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if strings.HasPrefix(header, "Bearer ") {
			return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		}
		return ""
	}
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
		return cookie
	}
	return ""
}

func reject(c *gin.Context, secLogger *security.SecurityLogger, reason string) {
	secLogger.LogUnauthorized(c.Request.Context(), c.ClientIP(), c.Request.UserAgent(),
		c.GetString(string(domain.KeyRequestID)), c.FullPath(), reason)
	response.Error(c, http.StatusUnauthorized, msgNotAuthenticated)
	c.Abort()
}

// IdentityFrom returns the identity stored by AuthMiddleware, or nil.
func IdentityFrom(c *gin.Context) *domain.Identity {
	v, ok := c.Get(string(domain.KeyIdentity))
	if !ok {
		return nil
	}
	identity, _ := v.(*domain.Identity)
	return identity
}

// RequireReady lets a request through only when the gate resolves to Ready.
// It must run after AuthMiddleware.
func RequireReady(gate domain.GateUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := gate.Resolve(c.Request.Context(), IdentityFrom(c))
		if err != nil {
			logger.Log.Error("Gate resolution failed", "error", err)
			response.Error(c, http.StatusServiceUnavailable, "Authentication service unavailable")
			c.Abort()
			return
		}

		c.Header("X-Gate-State", string(state))
		switch state {
		case domain.GateReady:
			c.Next()
			return
		case domain.GateUnverified:
			response.Error(c, http.StatusForbidden, "Email not verified")
		case domain.GateNeedsOnboarding:
			response.Error(c, http.StatusForbidden, "Onboarding required")
		default:
			response.Error(c, http.StatusUnauthorized, msgNotAuthenticated)
		}
		c.Abort()
	}
}
