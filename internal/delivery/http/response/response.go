package response

import (
	"github.com/gin-gonic/gin"
)

// Response standardizes the JSON envelope of application endpoints
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// ErrorBody is the only shape errors are rendered in. Internal details never reach it.
type ErrorBody struct {
	Error string `json:"error"`
}

func requestID(c *gin.Context) string {
	reqID, _ := c.Get("RequestID")
	idStr, _ := reqID.(string)
	return idStr
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: requestID(c),
	})
}

// Raw sends data without the envelope. Used by the proxy endpoints whose
// payload shape is fixed by the upstream contract.
func Raw(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

// Error sends {"error": message}
func Error(c *gin.Context, code int, message string) {
	if id := requestID(c); id != "" {
		c.Header("X-Request-ID", id)
	}
	c.JSON(code, ErrorBody{Error: message})
}
