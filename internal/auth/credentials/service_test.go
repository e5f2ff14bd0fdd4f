package credentials

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/zstrangeway/plydojo/internal/auth"
	"github.com/zstrangeway/plydojo/internal/auth/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	tokens    *auth.TokenSet
	authErr   error
	forgotErr error
	username  string
	createErr error
	setErr    error

	forgotCalls int
	created     []provider.NewUser
	setCalls    []string
	deadline    bool
}

func (f *fakeProvider) InitiatePasswordAuth(ctx context.Context, email, password string) (*auth.TokenSet, error) {
	_, f.deadline = ctx.Deadline()
	return f.tokens, f.authErr
}

func (f *fakeProvider) ForgotPassword(ctx context.Context, email string) error {
	f.forgotCalls++
	return f.forgotErr
}

func (f *fakeProvider) AdminCreateUser(ctx context.Context, u provider.NewUser) (string, error) {
	f.created = append(f.created, u)
	return f.username, f.createErr
}

func (f *fakeProvider) AdminSetPassword(ctx context.Context, email, password string) error {
	f.setCalls = append(f.setCalls, email+":"+password)
	return f.setErr
}

type fakeVerifier struct {
	err error
}

func (v fakeVerifier) Verify(context.Context, string) error {
	return v.err
}

func idToken(payload string) string {
	return "h." + base64.RawURLEncoding.EncodeToString([]byte(payload)) + ".s"
}

var validTokens = &auth.TokenSet{
	AccessToken:  "access-123",
	IDToken:      idToken(`{"sub":"sub-1","email":"a@b.com","name":"Ann","email_verified":true,"iat":1700000000}`),
	RefreshToken: "refresh-123",
}

func creds() auth.Credentials {
	return auth.Credentials{Email: "a@b.com", Password: "Secret123!"}
}

func TestAuthenticate_Success(t *testing.T) {
	p := &fakeProvider{tokens: validTokens}
	svc := NewService(p)

	result, err := svc.Authenticate(context.Background(), creds())
	require.NoError(t, err)

	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.Equal(t, "sub-1", result.User.ID)
	assert.Equal(t, "Ann", result.User.Name)
	assert.Equal(t, auth.StatusActive, result.User.Status)
	assert.True(t, p.deadline, "provider call must be bounded by a timeout")
}

func TestAuthenticate_ProviderErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		reason  auth.FailureReason
		message string
	}{
		{"not authorized", provider.ErrNotAuthorized, auth.ReasonInvalidCredentials, "Invalid credentials"},
		{"user not found", provider.ErrUserNotFound, auth.ReasonInvalidCredentials, "Invalid credentials"},
		{"too many requests", provider.ErrTooManyRequests, auth.ReasonRateLimited, "Too many login attempts. Please try again later."},
		{"not confirmed", provider.ErrUserNotConfirmed, auth.ReasonUnverifiedEmail, "Please verify your email address before logging in"},
		{"unavailable", provider.ErrUnavailable, auth.ReasonUnknown, "Authentication failed"},
		{"unexpected", errors.New("boom"), auth.ReasonUnknown, "Authentication failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&fakeProvider{authErr: fmt.Errorf("%w: InitiateAuth: cause", tt.err)})

			result, err := svc.Authenticate(context.Background(), creds())
			assert.Nil(t, result)

			var authErr *auth.AuthError
			require.True(t, errors.As(err, &authErr))
			assert.Equal(t, tt.reason, authErr.Reason)
			assert.Equal(t, tt.message, authErr.Message())
		})
	}
}

func TestAuthenticate_EnumerationSafe(t *testing.T) {
	_, wrongPassword := NewService(&fakeProvider{authErr: provider.ErrNotAuthorized}).
		Authenticate(context.Background(), creds())
	_, noAccount := NewService(&fakeProvider{authErr: provider.ErrUserNotFound}).
		Authenticate(context.Background(), creds())

	var a, b *auth.AuthError
	require.True(t, errors.As(wrongPassword, &a))
	require.True(t, errors.As(noAccount, &b))
	assert.Equal(t, a.Message(), b.Message())
}

func TestAuthenticate_TokenProblems(t *testing.T) {
	tests := []struct {
		name    string
		tokens  *auth.TokenSet
		reason  auth.FailureReason
		message string
	}{
		{"no tokens", nil, auth.ReasonUnknown, "Authentication failed"},
		{"no access token", &auth.TokenSet{IDToken: validTokens.IDToken}, auth.ReasonUnknown, "Authentication failed"},
		{"no id token", &auth.TokenSet{AccessToken: "a"}, auth.ReasonMissingIDToken, "Authentication failed - no ID token"},
		{"two segment id token", &auth.TokenSet{AccessToken: "a", IDToken: "x.y"}, auth.ReasonMalformedIDToken, "Invalid ID token format"},
		{"garbage payload", &auth.TokenSet{AccessToken: "a", IDToken: "x.@@@.z"}, auth.ReasonMalformedIDToken, "Invalid ID token format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&fakeProvider{tokens: tt.tokens})

			result, err := svc.Authenticate(context.Background(), creds())
			assert.Nil(t, result)

			var authErr *auth.AuthError
			require.True(t, errors.As(err, &authErr))
			assert.Equal(t, tt.reason, authErr.Reason)
			assert.Equal(t, tt.message, authErr.Message())
		})
	}
}

func TestAuthenticate_Verifier(t *testing.T) {
	svc := NewService(&fakeProvider{tokens: validTokens}, WithVerifier(fakeVerifier{err: errors.New("bad signature")}))

	_, err := svc.Authenticate(context.Background(), creds())

	var authErr *auth.AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, auth.ReasonMalformedIDToken, authErr.Reason)

	svc = NewService(&fakeProvider{tokens: validTokens}, WithVerifier(fakeVerifier{}))
	result, err := svc.Authenticate(context.Background(), creds())
	require.NoError(t, err)
	assert.Equal(t, "sub-1", result.User.ID)
}

func TestRequestPasswordReset_AlwaysSucceeds(t *testing.T) {
	errs := []error{
		nil,
		provider.ErrUserNotFound,
		provider.ErrTooManyRequests,
		provider.ErrUnavailable,
		errors.New("network down"),
	}

	for _, e := range errs {
		p := &fakeProvider{forgotErr: e}
		result := NewService(p).RequestPasswordReset(context.Background(), "a@b.com")

		assert.True(t, result.Success)
		assert.Equal(t, auth.PasswordResetMessage, result.Message)
		assert.Equal(t, 1, p.forgotCalls)
	}
}

func TestRequestPasswordReset_Idempotent(t *testing.T) {
	p := &fakeProvider{}
	svc := NewService(p)

	first := svc.RequestPasswordReset(context.Background(), "a@b.com")
	p.forgotErr = provider.ErrUserNotFound
	second := svc.RequestPasswordReset(context.Background(), "a@b.com")

	assert.Equal(t, first, second)
}

func TestCreateUser_Success(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	p := &fakeProvider{username: "a@b.com"}
	svc := NewService(p, WithClock(func() time.Time { return now }))

	user, err := svc.CreateUser(context.Background(), "a@b.com", "Secret123!", "Ann")
	require.NoError(t, err)

	assert.Equal(t, &auth.User{
		ID:            "a@b.com",
		Email:         "a@b.com",
		Name:          "Ann",
		Status:        auth.StatusPending,
		EmailVerified: false,
		CreatedAt:     now,
	}, user)

	require.Len(t, p.created, 1)
	assert.Len(t, p.created[0].TemporaryPassword, 12)
	assert.NotEqual(t, "Secret123!", p.created[0].TemporaryPassword)
	assert.False(t, p.created[0].EmailVerified)
	assert.Equal(t, []string{"a@b.com:Secret123!"}, p.setCalls)
}

func TestCreateUser_VerifiedEmail(t *testing.T) {
	p := &fakeProvider{username: "test@plydojo.com"}
	svc := NewService(p)

	user, err := svc.CreateUser(context.Background(), "test@plydojo.com", "TestPassword123!", "Test User", WithVerifiedEmail())
	require.NoError(t, err)

	assert.True(t, user.EmailVerified)
	assert.Equal(t, auth.StatusPending, user.Status)
	require.Len(t, p.created, 1)
	assert.True(t, p.created[0].EmailVerified)
}

func TestCreateUser_Errors(t *testing.T) {
	tests := []struct {
		name     string
		p        *fakeProvider
		reason   auth.CreateFailureReason
		message  string
		setCalls int
	}{
		{"exists", &fakeProvider{createErr: provider.ErrUsernameExists}, auth.CreateReasonAccountExists, "An account with this email already exists", 0},
		{"weak password on create", &fakeProvider{createErr: provider.ErrInvalidPassword}, auth.CreateReasonInvalidPassword, "Password does not meet requirements", 0},
		{"other", &fakeProvider{createErr: provider.ErrUnavailable}, auth.CreateReasonUnknown, "Failed to create account", 0},
		{"no username", &fakeProvider{}, auth.CreateReasonNoUsername, "Failed to create user", 0},
		{"weak password on set", &fakeProvider{username: "u", setErr: provider.ErrInvalidPassword}, auth.CreateReasonInvalidPassword, "Password does not meet requirements", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := NewService(tt.p).CreateUser(context.Background(), "a@b.com", "pw", "Ann")
			assert.Nil(t, user)

			var createErr *auth.CreateUserError
			require.True(t, errors.As(err, &createErr))
			assert.Equal(t, tt.reason, createErr.Reason)
			assert.Equal(t, tt.message, createErr.Message())
			assert.Len(t, tt.p.setCalls, tt.setCalls)
		})
	}
}
