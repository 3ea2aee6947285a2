// README: Request ID middleware; tags each request and its logs with an id.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"wanderplan/internal/observability"
)

const HeaderRequestID = "X-Request-ID"

// RequestID reuses an inbound X-Request-ID or generates a new one, echoes it on the
// response, and stores it on the request context for LoggerFromContext.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Header(HeaderRequestID, id)
		c.Request = c.Request.WithContext(observability.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}
