package provider

import (
	"context"

	"github.com/zstrangeway/plydojo/internal/auth"
)

// NewUser describes an account to be created by an administrator.
type NewUser struct {
	Email             string
	Name              string
	EmailVerified     bool
	TemporaryPassword string
}

// IdentityProvider defines the contract of the external managed identity
// backend. Implementations return provider facts only and translate their
// own failures into the sentinel errors declared in this package; they
// make no user-facing decisions.
type IdentityProvider interface {
	// InitiatePasswordAuth runs the password-based authentication flow.
	InitiatePasswordAuth(
		ctx context.Context,
		email string,
		password string,
	) (*auth.TokenSet, error)

	// ForgotPassword starts the provider's password recovery flow.
	ForgotPassword(ctx context.Context, email string) error

	// AdminCreateUser creates an account with a temporary password and
	// returns the provider's username for it.
	AdminCreateUser(ctx context.Context, u NewUser) (username string, err error)

	// AdminSetPassword replaces the account's password permanently.
	AdminSetPassword(ctx context.Context, email string, password string) error
}
