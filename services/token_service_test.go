package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	service := NewTokenService("test-secret")

	token, err := service.Sign("user-1", "ada")
	require.NoError(t, err)

	parsed, err := service.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", parsed.UserID)
	assert.Equal(t, "ada", parsed.Username)
	assert.True(t, parsed.ExpiresAt.After(time.Now()))
}

func TestTokenRejectsTampering(t *testing.T) {
	service := NewTokenService("test-secret")
	token, err := service.Sign("user-1", "ada")
	require.NoError(t, err)

	_, err = service.Verify(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = service.Verify("no-separator")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = service.Verify("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRejectsForeignSecret(t *testing.T) {
	token, err := NewTokenService("secret-a").Sign("user-1", "ada")
	require.NoError(t, err)

	_, err = NewTokenService("secret-b").Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRejectsExpired(t *testing.T) {
	service := NewTokenService("test-secret")
	service.ttl = -time.Minute

	token, err := service.Sign("user-1", "ada")
	require.NoError(t, err)

	_, err = service.Verify(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}
