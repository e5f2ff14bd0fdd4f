package middleware

import (
	"fmt"
	"net/http"

	"github.com/zstrangeway/plydojo/internal/logger"

	"github.com/gin-gonic/gin"
)

// Recovery converts panics into the standard failure envelope. The panic
// value is logged; nothing about it reaches the client.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logger.Error("panic recovered", map[string]any{
			"panic":      fmt.Sprint(recovered),
			"path":       c.Request.URL.Path,
			"request_id": RequestIDFrom(c),
		})

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
	})
}
