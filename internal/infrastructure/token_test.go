package infrastructure

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", "rikitrakiws", time.Hour)

	token, err := svc.Generate("testuser")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "testuser", claims.Subject)
	assert.Equal(t, "rikitrakiws", claims.Issuer)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenService("secret-a", "rikitrakiws", time.Hour).Generate("testuser")
	require.NoError(t, err)

	_, err = NewTokenService("secret-b", "rikitrakiws", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	token, err := NewTokenService("test-secret", "someone-else", time.Hour).Generate("testuser")
	require.NoError(t, err)

	_, err = NewTokenService("test-secret", "rikitrakiws", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	token, err := NewTokenService("test-secret", "rikitrakiws", -time.Minute).Generate("testuser")
	require.NoError(t, err)

	_, err = NewTokenService("test-secret", "rikitrakiws", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	svc := NewTokenService("test-secret", "rikitrakiws", time.Hour)
	_, err := svc.Parse("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
