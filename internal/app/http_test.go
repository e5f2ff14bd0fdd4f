package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/zstrangeway/plydojo/internal/auth"
	"github.com/zstrangeway/plydojo/internal/config"
	"github.com/zstrangeway/plydojo/internal/middleware"
	"github.com/zstrangeway/plydojo/internal/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCredentials struct{}

func (stubCredentials) Authenticate(_ context.Context, creds auth.Credentials) (*auth.Authentication, error) {
	return &auth.Authentication{
		User:   &auth.User{ID: "sub-1", Email: creds.Email, Name: "Ann", Status: auth.StatusActive},
		Tokens: &auth.TokenSet{AccessToken: "access", IDToken: "id"},
	}, nil
}

func (stubCredentials) RequestPasswordReset(context.Context, string) auth.ResetResult {
	return auth.ResetResult{Success: true, Message: auth.PasswordResetMessage}
}

func testConfig() config.Config {
	return config.Config{
		Stage:            "dev",
		WebsiteURL:       "http://localhost:3000",
		ProductionOrigin: "https://plydojo.com",
	}
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter_Routes(t *testing.T) {
	router := NewRouter(testConfig(), stubCredentials{}, ratelimit.Unlimited{})

	tests := []struct {
		method, path, body string
		want               int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodPost, "/login", `{"email":"a@b.com","password":"pw"}`, http.StatusOK},
		{http.MethodOptions, "/login", "", http.StatusOK},
		{http.MethodPost, "/password-reset", `{"email":"a@b.com"}`, http.StatusOK},
		{http.MethodGet, "/password-reset", "", http.StatusMethodNotAllowed},
		{http.MethodGet, "/nope", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		})
	}
}

func TestNewRouter_LoginCookie(t *testing.T) {
	router := NewRouter(testConfig(), stubCredentials{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"A@B.com","password":"pw"}`))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "auth-token=access")
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	var body struct {
		Success bool `json:"success"`
		User    struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "a@b.com", body.User.Email)
}
