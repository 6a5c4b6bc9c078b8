// internal/middleware/logging_middleware.go
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

const RequestIDKey = "request_id"

// LoggingMiddleware tags every request with a ULID and logs one line per
// completed request.
func LoggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := ulid.Make().String()
		c.Set(RequestIDKey, requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()

		logger.Info("request completed",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// GetRequestID returns the request's ULID, or an empty string outside the
// middleware chain.
func GetRequestID(c *gin.Context) string {
	id, exists := c.Get(RequestIDKey)
	if !exists {
		return ""
	}

	s, ok := id.(string)
	if !ok {
		return ""
	}
	return s
}
