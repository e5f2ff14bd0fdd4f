package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/zstrangeway/plydojo/internal/auth"
	"github.com/zstrangeway/plydojo/internal/config"
	"github.com/zstrangeway/plydojo/internal/logger"
	"github.com/zstrangeway/plydojo/internal/middleware"
	"github.com/zstrangeway/plydojo/internal/ratelimit"
	"github.com/zstrangeway/plydojo/internal/validate"

	"github.com/gin-gonic/gin"
)

const maxBodyBytes = 64 << 10

const (
	msgMethodNotAllowed = "Method not allowed"
	msgInvalidJSON      = "Invalid JSON in request body"
	msgInvalidEmail     = "Invalid email format"
	msgInternal         = "Internal server error"
)

var errInvalidJSON = errors.New("invalid json body")

// CredentialService is the credential exchange used by the handlers.
// *credentials.Service satisfies it.
type CredentialService interface {
	Authenticate(ctx context.Context, creds auth.Credentials) (*auth.Authentication, error)
	RequestPasswordReset(ctx context.Context, email string) auth.ResetResult
}

type Handler struct {
	credentials CredentialService
	limiter     ratelimit.Limiter
	policy      config.DeploymentPolicy
	validator   *validate.Validator
}

// NewHandler wires the auth endpoints. A nil limiter disables throttling.
func NewHandler(
	credentials CredentialService,
	limiter ratelimit.Limiter,
	policy config.DeploymentPolicy,
) *Handler {
	if limiter == nil {
		limiter = ratelimit.Unlimited{}
	}
	return &Handler{
		credentials: credentials,
		limiter:     limiter,
		policy:      policy,
		validator:   validate.New(),
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.health)

	// every method reaches the handlers so they can answer
	// preflight and 405 with CORS headers attached
	cors := r.Group("/", h.cors)
	cors.Any("/login", h.login)
	cors.Any("/password-reset", h.passwordReset)
}

func (h *Handler) cors(c *gin.Context) {
	hdr := c.Writer.Header()
	hdr.Set("Access-Control-Allow-Origin", h.policy.AllowedOrigin)
	hdr.Set("Access-Control-Allow-Credentials", "true")
	hdr.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	hdr.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	c.Next()
}

// gateMethod answers preflight and wrong-method requests. It returns true
// when the response has been written.
func (h *Handler) gateMethod(c *gin.Context) bool {
	switch c.Request.Method {
	case http.MethodPost:
		return false
	case http.MethodOptions:
		c.Status(http.StatusOK)
		return true
	default:
		fail(c, http.StatusMethodNotAllowed, msgMethodNotAllowed)
		return true
	}
}

// decodeBody parses the JSON body into dst. An empty body decodes as {}.
// A field holding the wrong JSON type is left zero so validation reports it
// like a missing field.
func decodeBody(c *gin.Context, dst any) error {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		return errors.Join(errInvalidJSON, err)
	}
	if strings.TrimSpace(string(body)) == "" {
		body = []byte("{}")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return nil
		}
		return errors.Join(errInvalidJSON, err)
	}
	return nil
}

// checkInput validates req and writes the 400 response when it fails.
// requiredMsg is reported when any required field is missing.
func (h *Handler) checkInput(c *gin.Context, req any, requiredMsg string) bool {
	err := h.validator.Struct(req)
	if err == nil {
		return true
	}

	var verr *validate.Error
	switch {
	case errors.As(err, &verr) && verr.Has("required"):
		fail(c, http.StatusBadRequest, requiredMsg)
	case errors.As(err, &verr) && verr.Has(validate.TagEmailShape):
		fail(c, http.StatusBadRequest, msgInvalidEmail)
	default:
		logger.Error("request validation error", map[string]any{
			"error":      err.Error(),
			"request_id": middleware.RequestIDFrom(c),
		})
		fail(c, http.StatusInternalServerError, msgInternal)
	}
	return false
}

// allow consults the throttle. Limiter errors fail open.
func (h *Handler) allow(c *gin.Context, action, email string) bool {
	ok, err := h.limiter.Allow(c.Request.Context(), ratelimit.Key(action, c.ClientIP(), email))
	if err != nil {
		logger.Warn("throttle unavailable", map[string]any{
			"action":     action,
			"error":      err.Error(),
			"request_id": middleware.RequestIDFrom(c),
		})
		return true
	}
	return ok
}
