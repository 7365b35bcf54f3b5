package apierrors

import (
	"errors"
	"net/http"
	"os"

	"github.com/ghibliart/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// the uniform error envelope returned by every endpoint
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// writes the error envelope for err and logs server-side detail.
// Typed *Error values keep their code and status; anything else becomes a
// generic internal_error that never leaks upstream detail to the caller.
func Respond(c *gin.Context, err error) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, ErrorResponse{
			Success: false,
			Error:   apiErr.Message,
			Message: apiErr.Message,
			Code:    apiErr.Code,
		})

		return
	}

	logger.ErrorErr(err, "unhandled error",
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"user_id", c.GetString("user_id"),
	)

	message := "an unexpected error occurred"
	if os.Getenv("ENVIRONMENT") != "production" && err != nil {
		message = err.Error()
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Success: false,
		Error:   message,
		Message: message,
		Code:    CodeInternalError,
	})
}
