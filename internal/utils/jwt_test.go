package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT(42, "test-secret")
	require.NoError(t, err)

	claims, err := ParseJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, tokenIssuer, claims.Issuer)
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(7, "right-secret")
	require.NoError(t, err)

	_, err = ParseJWT(token, "wrong-secret")
	assert.Error(t, err)
}

func TestParseJWTWrongIssuer(t *testing.T) {
	// A structurally valid token minted by someone else must be rejected
	claims := Claims{UserID: 7}
	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err := foreign.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = ParseJWT(token, "test-secret")
	assert.Error(t, err)
}

func TestParseJWTGarbage(t *testing.T) {
	_, err := ParseJWT("not-a-token", "test-secret")
	assert.Error(t, err)
}
