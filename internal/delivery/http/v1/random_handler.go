package v1

import (
	"net/http"

	"interview-prep-backend/internal/delivery/http/response"
	"interview-prep-backend/internal/domain"
	"interview-prep-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

const msgInvalidRange = "Invalid range"

type RandomHandler struct {
	randomUC domain.RandomUsecase
}

func NewRandomHandler(public *gin.RouterGroup, randomUC domain.RandomUsecase) {
	handler := &RandomHandler{randomUC: randomUC}

	public.POST("/random", handler.Draw)
}

type RandomResponse struct {
	Value int64 `json:"value"`
}

// Draw godoc
// @Summary      Random integer
// @Description  Uniform integer in [ceil(min), floor(max)]
// @Tags         random
// @Accept       json
// @Produce      json
// @Param        request  body      domain.RandomRequest  true  "Bounds"
// @Success      200      {object}  RandomResponse
// @Failure      400      {object}  response.ErrorBody
// @Router       /random [post]
func (h *RandomHandler) Draw(c *gin.Context) {
	var req domain.RandomRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Min == nil || req.Max == nil {
		c.Error(apperror.BadRequest(msgInvalidRange))
		return
	}

	value, err := h.randomUC.IntInclusive(*req.Min, *req.Max)
	if err != nil {
		c.Error(apperror.New(http.StatusBadRequest, msgInvalidRange, err))
		return
	}

	response.Raw(c, http.StatusOK, RandomResponse{Value: value})
}
