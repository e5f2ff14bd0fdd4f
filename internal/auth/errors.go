package auth

import "fmt"

// FailureReason classifies why an authentication attempt failed.
type FailureReason int

const (
	ReasonUnknown FailureReason = iota
	ReasonInvalidCredentials
	ReasonRateLimited
	ReasonUnverifiedEmail
	ReasonMissingIDToken
	ReasonMalformedIDToken
)

// Message returns the text that may be shown to the caller. Not-found and
// wrong-password both collapse into ReasonInvalidCredentials upstream, so
// the message never reveals whether an account exists.
func (r FailureReason) Message() string {
	switch r {
	case ReasonInvalidCredentials:
		return "Invalid credentials"
	case ReasonRateLimited:
		return "Too many login attempts. Please try again later."
	case ReasonUnverifiedEmail:
		return "Please verify your email address before logging in"
	case ReasonMissingIDToken:
		return "Authentication failed - no ID token"
	case ReasonMalformedIDToken:
		return "Invalid ID token format"
	case ReasonUnknown:
		return "Authentication failed"
	default:
		return "Authentication failed"
	}
}

func (r FailureReason) String() string {
	switch r {
	case ReasonInvalidCredentials:
		return "invalid_credentials"
	case ReasonRateLimited:
		return "rate_limited"
	case ReasonUnverifiedEmail:
		return "unverified_email"
	case ReasonMissingIDToken:
		return "missing_id_token"
	case ReasonMalformedIDToken:
		return "malformed_id_token"
	default:
		return "unknown"
	}
}

// AuthError is returned by the credential exchange on failure. Err holds
// the underlying cause for server-side logging and is never shown to callers.
type AuthError struct {
	Reason FailureReason
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth: %s: %v", e.Reason, e.Err)
	}
	return "auth: " + e.Reason.String()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// Message returns the caller-safe message for this failure.
func (e *AuthError) Message() string {
	return e.Reason.Message()
}

// CreateFailureReason classifies why an account could not be created.
type CreateFailureReason int

const (
	CreateReasonUnknown CreateFailureReason = iota
	CreateReasonAccountExists
	CreateReasonInvalidPassword
	CreateReasonNoUsername
)

func (r CreateFailureReason) Message() string {
	switch r {
	case CreateReasonAccountExists:
		return "An account with this email already exists"
	case CreateReasonInvalidPassword:
		return "Password does not meet requirements"
	case CreateReasonNoUsername:
		return "Failed to create user"
	case CreateReasonUnknown:
		return "Failed to create account"
	default:
		return "Failed to create account"
	}
}

func (r CreateFailureReason) String() string {
	switch r {
	case CreateReasonAccountExists:
		return "account_exists"
	case CreateReasonInvalidPassword:
		return "invalid_password"
	case CreateReasonNoUsername:
		return "no_username"
	default:
		return "unknown"
	}
}

// CreateUserError is returned when account creation fails.
type CreateUserError struct {
	Reason CreateFailureReason
	Err    error
}

func (e *CreateUserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("create user: %s: %v", e.Reason, e.Err)
	}
	return "create user: " + e.Reason.String()
}

func (e *CreateUserError) Unwrap() error {
	return e.Err
}

func (e *CreateUserError) Message() string {
	return e.Reason.Message()
}
