package provider

import "errors"

// Error categories reported by an IdentityProvider. Implementations wrap
// the SDK error so errors.Is works and the cause stays available for logs.
var (
	ErrNotAuthorized    = errors.New("provider: not authorized")
	ErrUserNotFound     = errors.New("provider: user not found")
	ErrTooManyRequests  = errors.New("provider: too many requests")
	ErrUserNotConfirmed = errors.New("provider: user not confirmed")
	ErrUsernameExists   = errors.New("provider: username exists")
	ErrInvalidPassword  = errors.New("provider: invalid password")
	ErrUnavailable      = errors.New("provider: unavailable")
)
