package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pollboard/internal/apperr"
)

const timestampLayout = "2006-01-02 15:04:05"

type ValidationError struct {
	Field         string `json:"field"`
	Message       string `json:"message"`
	RejectedValue any    `json:"rejectedValue"`
}

// ErrorResponse is the uniform error envelope every failure uses.
type ErrorResponse struct {
	ErrorCode        string            `json:"errorCode"`
	Message          string            `json:"message"`
	Status           int               `json:"status"`
	Path             string            `json:"path"`
	Timestamp        string            `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors,omitempty"`
}

func writeError(c *gin.Context, status int, code, message string, details []ValidationError) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		ErrorCode:        code,
		Message:          message,
		Status:           status,
		Path:             c.Request.URL.Path,
		Timestamp:        time.Now().Format(timestampLayout),
		ValidationErrors: details,
	})
}

// respondError maps a service failure onto the envelope. Internal
// failures keep their detail in the server log only.
func respondError(c *gin.Context, err error) {
	if appErr, ok := apperr.As(err); ok {
		if appErr.Code == apperr.CodeInternal {
			slog.Error("internal error", "error", appErr.Unwrap(), "path", c.Request.URL.Path)
		}
		writeError(c, appErr.Status, appErr.Code, appErr.Message, nil)
		return
	}
	slog.Error("unhandled error", "error", err, "path", c.Request.URL.Path)
	writeError(c, http.StatusInternalServerError, apperr.CodeInternal,
		"an unexpected error occurred", nil)
}
