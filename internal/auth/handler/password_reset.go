package handler

import (
	"net/http"
	"strings"

	"github.com/zstrangeway/plydojo/internal/auth"
	"github.com/zstrangeway/plydojo/internal/logger"
	"github.com/zstrangeway/plydojo/internal/middleware"

	"github.com/gin-gonic/gin"
)

const msgEmailRequired = "Email is required"

type passwordResetRequest struct {
	Email string `json:"email" validate:"required,emailshape"`
}

// passwordReset always answers 200 with the same body for a valid request,
// whether or not the account exists, the provider failed, or the client
// was throttled.
func (h *Handler) passwordReset(c *gin.Context) {
	if h.gateMethod(c) {
		return
	}

	var req passwordResetRequest
	if err := decodeBody(c, &req); err != nil {
		fail(c, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	if !h.checkInput(c, &req, msgEmailRequired) {
		return
	}

	email := strings.ToLower(req.Email)

	result := auth.ResetResult{Success: true, Message: auth.PasswordResetMessage}
	if h.allow(c, "password-reset", email) {
		result = h.credentials.RequestPasswordReset(c.Request.Context(), email)
	} else {
		logger.Warn("password reset throttled", map[string]any{
			"request_id": middleware.RequestIDFrom(c),
		})
	}

	c.JSON(http.StatusOK, envelope{
		Success: result.Success,
		Message: result.Message,
	})
}
