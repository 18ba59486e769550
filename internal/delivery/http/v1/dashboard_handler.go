package v1

import (
	"net/http"

	"interview-prep-backend/internal/delivery/http/middleware"
	"interview-prep-backend/internal/delivery/http/response"
	"interview-prep-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardUC domain.DashboardUsecase
}

// NewDashboardHandler expects ready to already enforce middleware.RequireReady.
func NewDashboardHandler(ready *gin.RouterGroup, dashboardUC domain.DashboardUsecase) {
	handler := &DashboardHandler{dashboardUC: dashboardUC}

	ready.GET("/dashboard", handler.Get)
}

// Get godoc
// @Summary      Dashboard
// @Description  Available only once the email is verified and onboarding is complete
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.Dashboard}
// @Failure      401  {object}  response.ErrorBody
// @Failure      403  {object}  response.ErrorBody
// @Router       /dashboard [get]
// @Security     BearerAuth
func (h *DashboardHandler) Get(c *gin.Context) {
	dashboard, err := h.dashboardUC.Get(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Dashboard retrieved", dashboard)
}
