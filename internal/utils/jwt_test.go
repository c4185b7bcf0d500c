package utils

import (
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestAccessTokenRoundTrip(t *testing.T) {
	userID := uuid.New()

	at, err := NewAccessToken(testSecret, userID, "admin", 60)
	require.NoError(t, err)
	require.NotEmpty(t, at.Token)

	gotID, gotRole, err := ParseAccessToken(testSecret, at.Token)
	require.NoError(t, err)
	assert.Equal(t, userID, gotID)
	assert.Equal(t, "admin", gotRole)
}

func TestParseAccessTokenExpired(t *testing.T) {
	// A negative TTL produces a token that is already expired.
	at, err := NewAccessToken(testSecret, uuid.New(), "user", -1)
	require.NoError(t, err)

	_, _, err = ParseAccessToken(testSecret, at.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAccessTokenWrongSecret(t *testing.T) {
	at, err := NewAccessToken(testSecret, uuid.New(), "user", 60)
	require.NoError(t, err)

	_, _, err = ParseAccessToken("different-secret", at.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAccessTokenTampered(t *testing.T) {
	at, err := NewAccessToken(testSecret, uuid.New(), "user", 60)
	require.NoError(t, err)

	// Flip a character in the payload segment; the signature no longer
	// matches.
	parts := strings.Split(at.Token, ".")
	require.Len(t, parts, 3)
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, _, err = ParseAccessToken(testSecret, tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAccessTokenGarbage(t *testing.T) {
	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, _, err := ParseAccessToken(testSecret, raw)
		assert.ErrorIs(t, err, ErrInvalidToken, "input %q", raw)
	}
}

func TestParseAccessTokenRejectsUnsignedAlg(t *testing.T) {
	// Tokens using alg "none" must fail even with a valid structure.
	claims := jwt.MapClaims{"sub": uuid.New().String(), "role": "admin"}
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	raw, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, _, err = ParseAccessToken(testSecret, raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAccessTokenBadSubject(t *testing.T) {
	claims := jwt.MapClaims{"sub": "not-a-uuid", "role": "user"}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	raw, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, _, err = ParseAccessToken(testSecret, raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
