package token

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/zstrangeway/plydojo/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeToken(payload string) string {
	return "eyJhbGciOiJSUzI1NiJ9." + base64.RawURLEncoding.EncodeToString([]byte(payload)) + ".c2lnbmF0dXJl"
}

func TestDecodeIdentityPayload(t *testing.T) {
	tok := makeToken(`{"sub":"user-1","email":"Jane@Example.com","name":"Jane Doe","email_verified":true,"iat":1700000000}`)

	user, err := DecodeIdentityPayload(tok)
	require.NoError(t, err)

	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "Jane@Example.com", user.Email)
	assert.Equal(t, "Jane Doe", user.Name)
	assert.Equal(t, auth.StatusActive, user.Status)
	assert.True(t, user.EmailVerified)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), user.CreatedAt)
	assert.Equal(t, "2023-11-14T22:13:20.000Z", auth.FormatTimestamp(user.CreatedAt))
}

func TestDecodeIdentityPayload_NameFallsBackToLocalPart(t *testing.T) {
	user, err := DecodeIdentityPayload(makeToken(`{"sub":"u","email":"player.one@plydojo.com","iat":1}`))
	require.NoError(t, err)

	assert.Equal(t, "player.one", user.Name)
	assert.False(t, user.EmailVerified)
}

func TestDecodeIdentityPayload_EmailVerifiedString(t *testing.T) {
	user, err := DecodeIdentityPayload(makeToken(`{"sub":"u","email":"a@b.com","email_verified":"true"}`))
	require.NoError(t, err)
	assert.True(t, user.EmailVerified)

	user, err = DecodeIdentityPayload(makeToken(`{"sub":"u","email":"a@b.com","email_verified":"false"}`))
	require.NoError(t, err)
	assert.False(t, user.EmailVerified)
}

func TestDecodeIdentityPayload_AcceptsStandardBase64(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte(`{"sub":"u","email":"a@b.com","name":"?>?"}`))
	user, err := DecodeIdentityPayload("h." + payload + ".s")
	require.NoError(t, err)
	assert.Equal(t, "?>?", user.Name)
}

func TestDecodeIdentityPayload_Errors(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"two segments", "header.payload", ErrSegmentCount},
		{"four segments", "a.b.c.d", ErrSegmentCount},
		{"no dots", "opaque", ErrSegmentCount},
		{"empty payload", "header..sig", ErrEmptyPayload},
		{"not base64", "header.!!!notbase64!!!.sig", ErrPayloadEncoding},
		{"not json", makeToken("hello"), ErrPayloadFormat},
		{"json array", makeToken(`["sub"]`), ErrPayloadFormat},
		{"missing email", makeToken(`{"sub":"u"}`), ErrMissingClaims},
		{"missing sub", makeToken(`{"email":"a@b.com"}`), ErrMissingClaims},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := DecodeIdentityPayload(tt.token)
			assert.Nil(t, user)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeIdentityPayload_DistinctReasons(t *testing.T) {
	_, segErr := DecodeIdentityPayload("a.b")
	_, encErr := DecodeIdentityPayload("a.%%%.c")

	assert.ErrorIs(t, segErr, ErrSegmentCount)
	assert.ErrorIs(t, encErr, ErrPayloadEncoding)
	assert.NotErrorIs(t, segErr, ErrPayloadEncoding)
	assert.NotErrorIs(t, encErr, ErrSegmentCount)
}

func TestCognitoIssuer(t *testing.T) {
	assert.Equal(t,
		"https://cognito-idp.us-east-1.amazonaws.com/us-east-1_abc",
		CognitoIssuer("us-east-1", "us-east-1_abc"))
}
