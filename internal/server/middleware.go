package server

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"pollboard/internal/apperr"
)

// Context keys set by bearerIdentity when a valid token accompanies the
// request.
const (
	ctxIdentityID   = "identityId"
	ctxIdentityRole = "identityRole"
)

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Info("request completed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

func recoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		slog.Error("panic recovered", "error", recovered, "path", c.Request.URL.Path)
		writeError(c, http.StatusInternalServerError, apperr.CodeInternal,
			"an unexpected error occurred", nil)
	})
}

// bearerIdentity attaches the token's identity to the request context
// when a valid bearer token is present. Endpoints stay open: a missing
// or invalid token never blocks the request.
func (s *Server) bearerIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			c.Next()
			return
		}
		claims, err := s.tokens.Verify(strings.TrimSpace(raw))
		if err != nil {
			c.Next()
			return
		}
		if id, err := claims.SubjectID(); err == nil {
			c.Set(ctxIdentityID, id)
			c.Set(ctxIdentityRole, claims.Role)
		}
		c.Next()
	}
}
