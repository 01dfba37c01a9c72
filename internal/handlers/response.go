package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mroshb/filmorate/pkg/errors"
	"github.com/mroshb/filmorate/pkg/logger"
	"github.com/mroshb/filmorate/pkg/utils"
)

// statusFor maps an AppError code to its HTTP status.
func statusFor(code string) int {
	switch code {
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeValidation, errors.ErrCodeInvalidArgument:
		return http.StatusBadRequest
	case errors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error": message}. Internal details are logged, not returned.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	code := errors.CodeOf(err)
	status := statusFor(code)
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "path", c.Request.URL.Path, "error", err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}

	message := err.Error()
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		message = appErr.Message
	}
	c.JSON(status, gin.H{"error": message})
}

func badRequest(c *gin.Context, message string) {
	respondError(c, errors.InvalidArgument(message))
}

// pathID parses a positive id path parameter, answering 400 when it is malformed.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := utils.ParseID(c.Param(name))
	if err != nil {
		badRequest(c, "invalid "+name+": "+c.Param(name))
		return 0, false
	}
	return id, true
}
