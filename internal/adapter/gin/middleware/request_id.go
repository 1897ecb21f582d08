package middleware

import (
	"github.com/gin-gonic/gin"

	"userdeck/pkg/logger"
)

// RequestID takes the request ID from the X-Request-ID header or generates
// one, stores it in the request context and echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, id := logger.ContextWithRequestID(c.Request.Context(), c.GetHeader(logger.RequestIDHeader))
		c.Request = c.Request.WithContext(ctx)
		c.Header(logger.RequestIDHeader, id)
		c.Next()
	}
}
