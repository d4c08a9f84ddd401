package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", "15m")

	token, expiresAt, err := svc.GenerateAccessToken("user-1", "ana@example.com", "hr")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.InDelta(t, time.Now().Add(15*time.Minute).Unix(), expiresAt, 5)

	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "hr", claims["role"])
	assert.Equal(t, TokenTypeAccess, claims["type"])
}

func TestGenerateAccessToken_InvalidDuration(t *testing.T) {
	svc := NewJWTService("test-secret", "soon")

	_, _, err := svc.GenerateAccessToken("user-1", "ana@example.com", "hr")
	assert.Error(t, err)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", "15m")
	verifier := NewJWTService("secret-b", "15m")

	token, _, err := issuer.GenerateAccessToken("user-1", "ana@example.com", "hr")
	require.NoError(t, err)

	_, err = jwtauth.VerifyToken(verifier.JWTAuth(), token)
	assert.Error(t, err)
}
