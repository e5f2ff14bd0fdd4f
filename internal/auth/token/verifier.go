package token

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
)

// Verifier checks an ID token's signature and standard claims before its
// payload is trusted.
type Verifier interface {
	Verify(ctx context.Context, rawIDToken string) error
}

// OIDCVerifier verifies ID tokens against the issuer's published JWKS.
type OIDCVerifier struct {
	verifier *oidc.IDTokenVerifier
}

// CognitoIssuer returns the issuer URL of a Cognito user pool.
func CognitoIssuer(region, userPoolID string) string {
	return fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s", region, userPoolID)
}

// NewCognitoVerifier builds a verifier for ID tokens issued to clientID by
// the given user pool. Keys are fetched lazily on first use; ctx must
// outlive the verifier.
func NewCognitoVerifier(ctx context.Context, region, userPoolID, clientID string) *OIDCVerifier {
	issuer := CognitoIssuer(region, userPoolID)
	keySet := oidc.NewRemoteKeySet(ctx, issuer+"/.well-known/jwks.json")

	return &OIDCVerifier{
		verifier: oidc.NewVerifier(issuer, keySet, &oidc.Config{
			ClientID: clientID,
		}),
	}
}

func (v *OIDCVerifier) Verify(ctx context.Context, rawIDToken string) error {
	if _, err := v.verifier.Verify(ctx, rawIDToken); err != nil {
		return fmt.Errorf("id token verification failed: %w", err)
	}
	return nil
}
