// README: Recovery middleware; converts a panic into a 500 with a fixed message.
package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"wanderplan/internal/observability"
)

// Recovery aborts with 500 {"error": message} when a later handler panics.
// The stack is logged, never written to the client.
func Recovery(message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				observability.LoggerFromContext(c.Request.Context()).Error("panic recovered",
					"path", c.Request.URL.Path,
					"panic", rec,
					"stack", string(debug.Stack()),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": message})
			}
		}()
		c.Next()
	}
}
