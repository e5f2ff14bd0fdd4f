package credentials

import (
	"context"
	"errors"
	"time"

	"github.com/zstrangeway/plydojo/internal/auth"
	"github.com/zstrangeway/plydojo/internal/auth/provider"
	"github.com/zstrangeway/plydojo/internal/auth/token"
	"github.com/zstrangeway/plydojo/internal/logger"
	"github.com/zstrangeway/plydojo/internal/utils"
)

const temporaryPasswordLength = 12

var (
	errNoAccessToken = errors.New("provider returned no access token")
	errNoIDToken     = errors.New("provider returned no id token")
)

// Service exchanges credentials with the identity provider and converts
// every provider outcome into the auth package vocabulary. Callers never
// see raw provider errors as messages.
type Service struct {
	provider provider.IdentityProvider
	verifier token.Verifier
	timeout  time.Duration
	now      func() time.Time
}

func NewService(p provider.IdentityProvider, opts ...Option) *Service {
	s := &Service{
		provider: p,
		timeout:  DefaultTimeout,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Authenticate(
	ctx context.Context,
	creds auth.Credentials,
) (*auth.Authentication, error) {

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	tokens, err := s.provider.InitiatePasswordAuth(ctx, creds.Email, creds.Password)
	if err != nil {
		return nil, s.fail(authFailureReason(err), err)
	}

	if tokens == nil || tokens.AccessToken == "" {
		return nil, s.fail(auth.ReasonUnknown, errNoAccessToken)
	}

	// tokens alone are not enough; the user must come from the ID token
	if tokens.IDToken == "" {
		return nil, s.fail(auth.ReasonMissingIDToken, errNoIDToken)
	}

	if s.verifier != nil {
		if err := s.verifier.Verify(ctx, tokens.IDToken); err != nil {
			return nil, s.fail(auth.ReasonMalformedIDToken, err)
		}
	}

	user, err := token.DecodeIdentityPayload(tokens.IDToken)
	if err != nil {
		return nil, s.fail(auth.ReasonMalformedIDToken, err)
	}

	return &auth.Authentication{
		User:   user,
		Tokens: tokens,
	}, nil
}

// RequestPasswordReset starts password recovery. The result is identical
// whether or not the account exists or the provider call succeeded.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) auth.ResetResult {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.provider.ForgotPassword(ctx, email); err != nil {
		// server-side only; the caller always gets the same answer
		logger.Warn("password reset request failed", map[string]any{
			"error":    err.Error(),
			"upstream": errors.Is(err, provider.ErrUnavailable),
		})
	}

	return auth.ResetResult{
		Success: true,
		Message: auth.PasswordResetMessage,
	}
}

// CreateUser creates a pending account: the provider first receives a random
// temporary password which is then replaced by the caller's password. The two
// calls are not atomic. If the second fails the account is left with the
// temporary password and the failure is logged for an operator.
func (s *Service) CreateUser(
	ctx context.Context,
	email string,
	password string,
	name string,
	opts ...CreateOption,
) (*auth.User, error) {

	var params createParams
	for _, opt := range opts {
		opt(&params)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	tmp, err := utils.TemporaryPassword(temporaryPasswordLength)
	if err != nil {
		return nil, s.failCreate(auth.CreateReasonUnknown, err)
	}

	username, err := s.provider.AdminCreateUser(ctx, provider.NewUser{
		Email:             email,
		Name:              name,
		EmailVerified:     params.emailVerified,
		TemporaryPassword: tmp,
	})
	if err != nil {
		return nil, s.failCreate(createFailureReason(err), err)
	}
	if username == "" {
		return nil, s.failCreate(auth.CreateReasonNoUsername, nil)
	}

	if err := s.provider.AdminSetPassword(ctx, email, password); err != nil {
		logger.Error("account left with temporary password", map[string]any{
			"username": username,
			"error":    err.Error(),
		})
		return nil, s.failCreate(createFailureReason(err), err)
	}

	return &auth.User{
		ID:            username,
		Email:         email,
		Name:          name,
		Status:        auth.StatusPending,
		EmailVerified: params.emailVerified,
		CreatedAt:     s.now().UTC(),
	}, nil
}

func (s *Service) fail(reason auth.FailureReason, err error) *auth.AuthError {
	fields := map[string]any{"reason": reason.String()}
	if err != nil {
		fields["error"] = err.Error()
	}
	logger.Warn("authentication failed", fields)
	return &auth.AuthError{Reason: reason, Err: err}
}

func (s *Service) failCreate(reason auth.CreateFailureReason, err error) *auth.CreateUserError {
	fields := map[string]any{"reason": reason.String()}
	if err != nil {
		fields["error"] = err.Error()
	}
	logger.Error("create user failed", fields)
	return &auth.CreateUserError{Reason: reason, Err: err}
}

// authFailureReason maps provider error categories to authentication
// failure reasons. Not-authorized and not-found share a reason so the
// response does not reveal whether the account exists.
func authFailureReason(err error) auth.FailureReason {
	switch {
	case errors.Is(err, provider.ErrNotAuthorized),
		errors.Is(err, provider.ErrUserNotFound):
		return auth.ReasonInvalidCredentials
	case errors.Is(err, provider.ErrTooManyRequests):
		return auth.ReasonRateLimited
	case errors.Is(err, provider.ErrUserNotConfirmed):
		return auth.ReasonUnverifiedEmail
	default:
		return auth.ReasonUnknown
	}
}

func createFailureReason(err error) auth.CreateFailureReason {
	switch {
	case errors.Is(err, provider.ErrUsernameExists):
		return auth.CreateReasonAccountExists
	case errors.Is(err, provider.ErrInvalidPassword):
		return auth.CreateReasonInvalidPassword
	default:
		return auth.CreateReasonUnknown
	}
}
