package session

import (
	"net/http"
	"time"

	"github.com/zstrangeway/plydojo/internal/config"
)

const (
	CookieName = "auth-token"

	// CookieMaxAge matches the identity provider's default access token
	// lifetime. Keep the two in sync.
	CookieMaxAge = time.Hour
)

// CookieOptions defines how session cookies are issued.
type CookieOptions struct {
	Path     string
	MaxAge   time.Duration
	HttpOnly bool
	Secure   bool
	SameSite http.SameSite
}

// OptionsFor returns the cookie options for a deployment. Secure is only set
// in production; local and staging cookies travel over plain HTTP.
func OptionsFor(policy config.DeploymentPolicy) CookieOptions {
	return CookieOptions{
		Path:     "/",
		MaxAge:   CookieMaxAge,
		HttpOnly: true,
		Secure:   policy.IsProduction,
		SameSite: http.SameSiteStrictMode,
	}
}

// BuildCookie renders the Set-Cookie header value carrying the raw access
// token. The token is neither encoded nor signed.
func BuildCookie(accessToken string, policy config.DeploymentPolicy) string {
	opts := OptionsFor(policy)

	c := &http.Cookie{
		Name:     CookieName,
		Value:    accessToken,
		Path:     opts.Path,
		MaxAge:   int(opts.MaxAge.Seconds()),
		HttpOnly: opts.HttpOnly,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	}
	return c.String()
}
