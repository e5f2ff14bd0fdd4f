package token

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/zstrangeway/plydojo/internal/auth"
)

var (
	ErrSegmentCount    = errors.New("token: id token must have exactly three segments")
	ErrEmptyPayload    = errors.New("token: id token payload segment is empty")
	ErrPayloadEncoding = errors.New("token: id token payload is not valid base64")
	ErrPayloadFormat   = errors.New("token: id token payload is not a JSON object")
	ErrMissingClaims   = errors.New("token: id token missing required claims")
)

// flexBool accepts both JSON booleans and the "true"/"false" strings some
// providers emit for email_verified.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	switch string(bytes.ToLower(bytes.Trim(data, `"`))) {
	case "true":
		*b = true
	default:
		*b = false
	}
	return nil
}

type identityClaims struct {
	Subject       string   `json:"sub"`
	Email         string   `json:"email"`
	Name          string   `json:"name"`
	EmailVerified flexBool `json:"email_verified"`
	IssuedAt      int64    `json:"iat"`
}

// DecodeIdentityPayload extracts the user identity from an ID token's
// payload. The signature is NOT checked here; see Verifier.
func DecodeIdentityPayload(idToken string) (*auth.User, error) {
	parts := strings.Split(idToken, ".")
	if len(parts) != 3 {
		return nil, ErrSegmentCount
	}
	if parts[1] == "" {
		return nil, ErrEmptyPayload
	}

	raw, err := decodeSegment(parts[1])
	if err != nil {
		return nil, errors.Join(ErrPayloadEncoding, err)
	}

	var claims identityClaims
	if err := json.Unmarshal(raw, &claims); err != nil {
		return nil, errors.Join(ErrPayloadFormat, err)
	}

	if claims.Subject == "" || claims.Email == "" {
		return nil, ErrMissingClaims
	}

	name := claims.Name
	if name == "" {
		name, _, _ = strings.Cut(claims.Email, "@")
	}

	return &auth.User{
		ID:            claims.Subject,
		Email:         claims.Email,
		Name:          name,
		Status:        auth.StatusActive,
		EmailVerified: bool(claims.EmailVerified),
		CreatedAt:     time.Unix(claims.IssuedAt, 0).UTC(),
	}, nil
}

// decodeSegment accepts both the URL-safe alphabet used by JWTs and the
// standard alphabet, with or without padding.
func decodeSegment(seg string) ([]byte, error) {
	seg = strings.TrimRight(seg, "=")
	seg = strings.NewReplacer("+", "-", "/", "_").Replace(seg)
	return base64.RawURLEncoding.DecodeString(seg)
}
