package middleware

import (
	"errors"
	"net/http"

	"interview-prep-backend/internal/delivery/http/response"
	"interview-prep-backend/pkg/apperror"
	"interview-prep-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

const msgUnexpected = "An unexpected error occurred. Please try again later."

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		reqID := c.GetString("RequestID")

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError {
				logger.Log.Error("Request failed",
					"request_id", reqID, "path", c.FullPath(), "status", appErr.Code, "error", errors.Unwrap(appErr))
			}
			response.Error(c, appErr.Code, appErr.Message)
			return
		}

		// Never expose internal error details to clients.
		logger.Log.Error("Internal Server Error", "request_id", reqID, "path", c.FullPath(), "error", err)
		response.Error(c, http.StatusInternalServerError, msgUnexpected)
	}
}
