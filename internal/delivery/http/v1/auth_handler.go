package v1

import (
	"net/http"

	"interview-prep-backend/internal/delivery/http/middleware"
	"interview-prep-backend/internal/delivery/http/response"
	"interview-prep-backend/internal/domain"
	"interview-prep-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
	gateUC domain.GateUsecase
}

// NewAuthHandler mounts /auth. limited carries the auth rate limiter and
// protected the identity gate.
func NewAuthHandler(limited *gin.RouterGroup, protected *gin.RouterGroup, authUC domain.AuthUsecase, gateUC domain.GateUsecase) {
	handler := &AuthHandler{
		authUC: authUC,
		gateUC: gateUC,
	}

	// Public Routes
	publicAuth := limited.Group("/auth")
	{
		publicAuth.POST("/signup", handler.SignUp)
		publicAuth.POST("/login", handler.Login)
		publicAuth.POST("/refresh", handler.Refresh)
		publicAuth.POST("/resend-verification", handler.ResendVerification)
	}

	// Protected Routes
	protectedAuth := protected.Group("/auth")
	{
		protectedAuth.GET("/me", handler.Me)
		protectedAuth.GET("/state", handler.State)
		protectedAuth.POST("/logout", handler.Logout)
	}
}

type CredentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type EmailRequest struct {
	Email string `json:"email" binding:"required"`
}

// GateStateResponse is the post-login decision for the current session.
type GateStateResponse struct {
	State    domain.GateState `json:"state"`
	Redirect string           `json:"redirect"`
}

// SignUp godoc
// @Summary      User Registration
// @Description  Register with email and password. A verification email is sent by the identity service.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      CredentialsRequest  true  "Registration Details"
// @Success      201      {object}  response.Response{data=domain.SignUpResult}
// @Failure      400      {object}  response.ErrorBody
// @Failure      429      {object}  response.ErrorBody
// @Router       /auth/signup [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Email and password are required"))
		return
	}

	result, err := h.authUC.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Check your email to verify your account", result)
}

// Login godoc
// @Summary      User Login
// @Description  Sign in with email and password. Returns the session and where the client should go next.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      CredentialsRequest  true  "Login Credentials"
// @Success      200      {object}  response.Response{data=domain.LoginResult}
// @Failure      400      {object}  response.ErrorBody
// @Failure      401      {object}  response.ErrorBody
// @Failure      429      {object}  response.ErrorBody
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Email and password are required"))
		return
	}

	result, err := h.authUC.Login(c.Request.Context(), domain.LoginAttempt{
		Email:     req.Email,
		Password:  req.Password,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		RequestID: c.GetString(string(domain.KeyRequestID)),
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", result)
}

// Refresh godoc
// @Summary      Refresh session
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      RefreshRequest  true  "Refresh token"
// @Success      200      {object}  response.Response{data=domain.Session}
// @Failure      401      {object}  response.ErrorBody
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Refresh token is required"))
		return
	}

	session, err := h.authUC.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Session refreshed", session)
}

// ResendVerification godoc
// @Summary      Resend verification email
// @Description  Always succeeds for well-formed addresses so registered emails are not disclosed.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      EmailRequest  true  "Email"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.ErrorBody
// @Router       /auth/resend-verification [post]
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("A valid email is required"))
		return
	}

	if err := h.authUC.ResendVerification(c.Request.Context(), req.Email); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "If the account exists, a verification email has been sent", nil)
}

// Me godoc
// @Summary      Get current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.AuthUser}
// @Failure      401  {object}  response.ErrorBody
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authUC.CurrentUser(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User retrieved", user)
}

// State godoc
// @Summary      Resolve the post-login gate
// @Description  Decides whether the caller must verify their email, finish onboarding, or may use the dashboard.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response{data=GateStateResponse}
// @Failure      401  {object}  response.ErrorBody
// @Router       /auth/state [get]
// @Security     BearerAuth
func (h *AuthHandler) State(c *gin.Context) {
	state, err := h.gateUC.Resolve(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		c.Error(apperror.New(http.StatusServiceUnavailable, "Authentication service unavailable", err))
		return
	}

	response.Success(c, http.StatusOK, "Gate resolved", GateStateResponse{
		State:    state,
		Redirect: state.RedirectPath(),
	})
}

// Logout godoc
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.ErrorBody
// @Router       /auth/logout [post]
// @Security     BearerAuth
func (h *AuthHandler) Logout(c *gin.Context) {
	identity := middleware.IdentityFrom(c)
	if err := h.authUC.Logout(c.Request.Context(), identity.AccessToken); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Logged out", nil)
}
