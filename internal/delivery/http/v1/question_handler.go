package v1

import (
	"net/http"

	"interview-prep-backend/internal/delivery/http/response"
	"interview-prep-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	questionUC domain.QuestionUsecase
}

func NewQuestionHandler(public *gin.RouterGroup, questionUC domain.QuestionUsecase) {
	handler := &QuestionHandler{questionUC: questionUC}

	public.GET("/leetcode", handler.GetQuestion)
}

// GetQuestion godoc
// @Summary      LeetCode question proxy
// @Description  Looks up one problem by slug through the LeetCode GraphQL API
// @Tags         leetcode
// @Produce      json
// @Param        slug  query     string  false  "Problem slug"  default(two-sum)
// @Success      200   {object}  domain.Question
// @Failure      404   {object}  response.ErrorBody
// @Failure      500   {object}  response.ErrorBody
// @Router       /leetcode [get]
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	question, err := h.questionUC.GetQuestion(c.Request.Context(), c.Query("slug"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Raw(c, http.StatusOK, question)
}
