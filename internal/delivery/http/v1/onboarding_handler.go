package v1

import (
	"net/http"

	"interview-prep-backend/internal/delivery/http/middleware"
	"interview-prep-backend/internal/delivery/http/response"
	"interview-prep-backend/internal/domain"
	"interview-prep-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type OnboardingHandler struct {
	onboardingUC domain.OnboardingUsecase
}

func NewOnboardingHandler(public *gin.RouterGroup, protected *gin.RouterGroup, onboardingUC domain.OnboardingUsecase) {
	handler := &OnboardingHandler{onboardingUC: onboardingUC}

	public.GET("/onboarding/options", handler.GetOptions)

	onboarding := protected.Group("/onboarding")
	{
		onboarding.GET("/status", handler.GetStatus)
		onboarding.GET("/draft", handler.GetDraft)
		onboarding.PUT("/draft", handler.SaveDraft)
		onboarding.DELETE("/draft", handler.DiscardDraft)
		onboarding.POST("/next", handler.Next)
		onboarding.POST("/back", handler.Back)
		onboarding.POST("/complete", handler.Complete)
	}
}

func userID(c *gin.Context) string {
	if identity := middleware.IdentityFrom(c); identity != nil {
		return identity.UserID
	}
	return ""
}

func bindDraft(c *gin.Context) (*domain.OnboardingDraft, bool) {
	var draft domain.OnboardingDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return nil, false
	}
	return &draft, true
}

// GetOptions godoc
// @Summary      Onboarding catalog
// @Description  Roles, experience levels and focus topics offered by the wizard
// @Tags         onboarding
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.OnboardingOptions}
// @Router       /onboarding/options [get]
func (h *OnboardingHandler) GetOptions(c *gin.Context) {
	response.Success(c, http.StatusOK, "Onboarding options retrieved", h.onboardingUC.Options())
}

// GetStatus godoc
// @Summary      Get onboarding status
// @Description  Check if the current user has completed the onboarding wizard
// @Tags         onboarding
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.OnboardingStatus}
// @Failure      401  {object}  response.ErrorBody
// @Router       /onboarding/status [get]
// @Security     BearerAuth
func (h *OnboardingHandler) GetStatus(c *gin.Context) {
	status, err := h.onboardingUC.GetStatus(c.Request.Context(), userID(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Onboarding status retrieved", status)
}

// GetDraft godoc
// @Summary      Get the saved wizard draft
// @Description  Returns the stored draft, or an empty draft at step 0 when none exists
// @Tags         onboarding
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.OnboardingDraft}
// @Failure      401  {object}  response.ErrorBody
// @Router       /onboarding/draft [get]
// @Security     BearerAuth
func (h *OnboardingHandler) GetDraft(c *gin.Context) {
	draft, err := h.onboardingUC.GetDraft(c.Request.Context(), userID(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Draft retrieved", draft)
}

// SaveDraft godoc
// @Summary      Save the wizard draft
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        request  body      domain.OnboardingDraft  true  "Draft"
// @Success      200      {object}  response.Response{data=domain.OnboardingDraft}
// @Failure      400      {object}  response.ErrorBody
// @Failure      401      {object}  response.ErrorBody
// @Router       /onboarding/draft [put]
// @Security     BearerAuth
func (h *OnboardingHandler) SaveDraft(c *gin.Context) {
	draft, ok := bindDraft(c)
	if !ok {
		return
	}

	saved, err := h.onboardingUC.SaveDraft(c.Request.Context(), userID(c), draft)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Draft saved", saved)
}

// DiscardDraft godoc
// @Summary      Discard the wizard draft
// @Tags         onboarding
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.ErrorBody
// @Router       /onboarding/draft [delete]
// @Security     BearerAuth
func (h *OnboardingHandler) DiscardDraft(c *gin.Context) {
	if err := h.onboardingUC.DiscardDraft(c.Request.Context(), userID(c)); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Draft discarded", nil)
}

// Next godoc
// @Summary      Advance the wizard
// @Description  Validates the current step, moves forward and saves the draft
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        request  body      domain.OnboardingDraft  true  "Draft"
// @Success      200      {object}  response.Response{data=domain.OnboardingDraft}
// @Failure      400      {object}  response.ErrorBody
// @Failure      401      {object}  response.ErrorBody
// @Router       /onboarding/next [post]
// @Security     BearerAuth
func (h *OnboardingHandler) Next(c *gin.Context) {
	draft, ok := bindDraft(c)
	if !ok {
		return
	}

	next, err := h.onboardingUC.Next(c.Request.Context(), userID(c), draft)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Step completed", next)
}

// Back godoc
// @Summary      Go back one wizard step
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        request  body      domain.OnboardingDraft  true  "Draft"
// @Success      200      {object}  response.Response{data=domain.OnboardingDraft}
// @Failure      400      {object}  response.ErrorBody
// @Failure      401      {object}  response.ErrorBody
// @Router       /onboarding/back [post]
// @Security     BearerAuth
func (h *OnboardingHandler) Back(c *gin.Context) {
	draft, ok := bindDraft(c)
	if !ok {
		return
	}

	prev, err := h.onboardingUC.Back(c.Request.Context(), userID(c), draft)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Moved back", prev)
}

// Complete godoc
// @Summary      Complete onboarding wizard
// @Description  Submit the wizard form and mark onboarding as complete
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        request  body      domain.OnboardingForm  true  "Onboarding data"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.ErrorBody
// @Failure      401      {object}  response.ErrorBody
// @Failure      409      {object}  response.ErrorBody
// @Router       /onboarding/complete [post]
// @Security     BearerAuth
func (h *OnboardingHandler) Complete(c *gin.Context) {
	var form domain.OnboardingForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	if err := h.onboardingUC.Complete(c.Request.Context(), userID(c), &form); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Onboarding completed successfully", GateStateResponse{
		State:    domain.GateReady,
		Redirect: domain.GateReady.RedirectPath(),
	})
}
