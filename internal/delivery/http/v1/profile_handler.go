package v1

import (
	"net/http"

	"interview-prep-backend/internal/delivery/http/response"
	"interview-prep-backend/internal/domain"
	"interview-prep-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUC domain.ProfileUsecase
}

func NewProfileHandler(protected *gin.RouterGroup, profileUC domain.ProfileUsecase) {
	handler := &ProfileHandler{profileUC: profileUC}

	profile := protected.Group("/profile")
	{
		profile.GET("", handler.GetProfile)
		profile.PUT("", handler.UpdateProfile)
	}
}

// GetProfile godoc
// @Summary      Get my profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.Profile}
// @Failure      401  {object}  response.ErrorBody
// @Failure      404  {object}  response.ErrorBody
// @Router       /profile [get]
// @Security     BearerAuth
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileUC.GetProfile(c.Request.Context(), userID(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved", profile)
}

// UpdateProfile godoc
// @Summary      Update my profile
// @Description  Same fields and rules as the onboarding form
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        request  body      domain.OnboardingForm  true  "Profile fields"
// @Success      200      {object}  response.Response{data=domain.Profile}
// @Failure      400      {object}  response.ErrorBody
// @Failure      401      {object}  response.ErrorBody
// @Failure      404      {object}  response.ErrorBody
// @Router       /profile [put]
// @Security     BearerAuth
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var form domain.OnboardingForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	profile, err := h.profileUC.UpdateProfile(c.Request.Context(), userID(c), &form)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated", profile)
}
