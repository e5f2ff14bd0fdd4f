package auth

import "time"

// Status is the lifecycle state of an account as seen by this service.
type Status string

const (
	StatusPending Status = "pending" // created, email not yet verified
	StatusActive  Status = "active"  // able to authenticate
)

// Credentials is the email/password pair submitted by a client.
// It is never persisted or logged.
type Credentials struct {
	Email    string
	Password string
}

// User represents an authenticated (or freshly created) account.
// It contains facts derived from the identity provider only.
type User struct {
	ID            string    // provider subject / username
	Email         string
	Name          string
	Status        Status
	EmailVerified bool
	CreatedAt     time.Time
}

// TokenSet holds the tokens issued by the identity provider after a
// successful authentication. Tokens are opaque except for the ID token
// payload consumed by the token package.
type TokenSet struct {
	AccessToken  string
	IDToken      string
	RefreshToken string
}

// Authentication is the result of a successful credential exchange.
type Authentication struct {
	User   *User
	Tokens *TokenSet
}

// ResetResult is returned by password reset requests. Success is always
// true and Message is always the same text.
type ResetResult struct {
	Success bool
	Message string
}

// PasswordResetMessage is the only message a password reset request ever returns.
const PasswordResetMessage = "If an account with that email exists, password reset instructions have been sent."

// FormatTimestamp renders t as ISO-8601 UTC with millisecond precision.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
