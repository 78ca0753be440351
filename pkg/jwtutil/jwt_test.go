package jwtutil

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	j := NewJWTUtil("test-key")

	token, err := j.GenerateToken("us-east-1:abc", "tenant", time.Hour)
	require.NoError(t, err)

	claims, err := j.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "us-east-1:abc", claims.Subject)
	assert.Equal(t, "tenant", claims.Role)
}

func TestValidateToken_WrongKey(t *testing.T) {
	token, err := NewJWTUtil("key-a").GenerateToken("sub", "tenant", time.Hour)
	require.NoError(t, err)

	_, err = NewJWTUtil("key-b").ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestValidateToken_Expired(t *testing.T) {
	j := NewJWTUtil("test-key")
	token, err := j.GenerateToken("sub", "tenant", -time.Minute)
	require.NoError(t, err)

	_, err = j.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestValidateToken_MissingSubject(t *testing.T) {
	j := NewJWTUtil("test-key")
	token, err := j.GenerateToken("", "tenant", time.Hour)
	require.NoError(t, err)

	_, err = j.ValidateToken(token)
	assert.Error(t, err)
}

func TestGenerateToken_NoKey(t *testing.T) {
	_, err := NewJWTUtil("").GenerateToken("sub", "tenant", time.Hour)
	assert.Error(t, err)
}
