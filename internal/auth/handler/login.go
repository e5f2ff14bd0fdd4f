package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/zstrangeway/plydojo/internal/auth"
	"github.com/zstrangeway/plydojo/internal/logger"
	"github.com/zstrangeway/plydojo/internal/middleware"
	"github.com/zstrangeway/plydojo/internal/session"

	"github.com/gin-gonic/gin"
)

const msgLoginRequired = "Email and password are required"

type loginRequest struct {
	Email    string `json:"email" validate:"required,emailshape"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) login(c *gin.Context) {
	if h.gateMethod(c) {
		return
	}

	var req loginRequest
	if err := decodeBody(c, &req); err != nil {
		fail(c, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	if !h.checkInput(c, &req, msgLoginRequired) {
		return
	}

	email := strings.ToLower(req.Email)

	if !h.allow(c, "login", email) {
		fail(c, http.StatusUnauthorized, auth.ReasonRateLimited.Message())
		return
	}

	result, err := h.credentials.Authenticate(c.Request.Context(), auth.Credentials{
		Email:    email,
		Password: req.Password,
	})

	logger.Info("login attempt", map[string]any{
		"success":    err == nil,
		"has_user":   result != nil && result.User != nil,
		"has_tokens": result != nil && result.Tokens != nil,
		"request_id": middleware.RequestIDFrom(c),
	})

	if err != nil || result == nil || result.User == nil || result.Tokens == nil {
		message := auth.ReasonInvalidCredentials.Message()
		var authErr *auth.AuthError
		if errors.As(err, &authErr) {
			message = authErr.Message()
		}
		fail(c, http.StatusUnauthorized, message)
		return
	}

	c.Header("Set-Cookie", session.BuildCookie(result.Tokens.AccessToken, h.policy))
	c.JSON(http.StatusOK, envelope{
		Success: true,
		User:    newUserView(result.User),
	})
}
