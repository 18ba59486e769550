package v1

import (
	"net/http"

	"interview-prep-backend/internal/delivery/http/response"
	"interview-prep-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type RecommendationHandler struct {
	recommendationUC domain.RecommendationUsecase
}

// NewRecommendationHandler mounts the recommendation endpoint. extra runs
// after authentication, typically the per-user rate limiter.
func NewRecommendationHandler(protected *gin.RouterGroup, recommendationUC domain.RecommendationUsecase, extra ...gin.HandlerFunc) {
	handler := &RecommendationHandler{recommendationUC: recommendationUC}

	protected.GET("/recommendations", append(extra, handler.Generate)...)
}

// Generate godoc
// @Summary      Generate practice recommendations
// @Description  Builds a prompt from the caller's profile, asks the completion service once and returns the
// @Description  normalized list with LeetCode links. The body is {schema, recommendations} without the envelope.
// @Tags         recommendations
// @Produce      json
// @Param        mode  query     string  false  "question (default) or tag"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  response.ErrorBody
// @Failure      401   {object}  response.ErrorBody
// @Failure      404   {object}  response.ErrorBody
// @Failure      500   {object}  response.ErrorBody
// @Failure      502   {object}  response.ErrorBody
// @Router       /recommendations [get]
// @Security     BearerAuth
func (h *RecommendationHandler) Generate(c *gin.Context) {
	mode := domain.RecommendationMode(c.Query("mode"))

	result, err := h.recommendationUC.Generate(c.Request.Context(), userID(c), mode)
	if err != nil {
		c.Error(err)
		return
	}

	response.Raw(c, http.StatusOK, result)
}
