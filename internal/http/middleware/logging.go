// README: Access log middleware.
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"wanderplan/internal/observability"
)

func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		logger := observability.LoggerFromContext(c.Request.Context())
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
		}
		if status >= 500 {
			logger.Error("request completed", attrs...)
			return
		}
		logger.Info("request completed", attrs...)
	}
}
