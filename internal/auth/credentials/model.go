package credentials

import (
	"time"

	"github.com/zstrangeway/plydojo/internal/auth/token"
)

// DefaultTimeout bounds every provider call.
const DefaultTimeout = 5 * time.Second

// Option configures a Service.
type Option func(*Service)

// WithVerifier enables ID token signature verification before the payload
// is decoded.
func WithVerifier(v token.Verifier) Option {
	return func(s *Service) {
		s.verifier = v
	}
}

func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

type createParams struct {
	emailVerified bool
}

// CreateOption adjusts a single CreateUser call.
type CreateOption func(*createParams)

// WithVerifiedEmail marks the new account's email as already verified so it
// can sign in and recover its password without a confirmation step.
func WithVerifiedEmail() CreateOption {
	return func(p *createParams) {
		p.emailVerified = true
	}
}
