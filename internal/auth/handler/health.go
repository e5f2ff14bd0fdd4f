package handler

import (
	"net/http"
	"time"

	"github.com/zstrangeway/plydojo/internal/auth"

	"github.com/gin-gonic/gin"
)

const serviceName = "plydojo-api"

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": auth.FormatTimestamp(time.Now()),
		"service":   serviceName,
	})
}
