package middleware

import (
	"time"

	"github.com/zstrangeway/plydojo/internal/logger"

	"github.com/gin-gonic/gin"
)

// AccessLog writes one structured line per request.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := map[string]any{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"request_id": RequestIDFrom(c),
		}

		if c.Writer.Status() >= 500 {
			logger.Error("request failed", fields)
			return
		}
		logger.Info("request completed", fields)
	}
}
