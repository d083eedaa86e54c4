package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundtrip(t *testing.T) {
	tm := NewTokenManager("secret", 15)

	token, expiresAt, err := tm.GenerateToken("user-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, time.Minute)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", 15).GenerateToken("user-1")
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", 15).ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := NewTokenManager("secret", 15).ParseToken("not.a.token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.NoError(t, ComparePassword(hash, "hunter22"))
	assert.Error(t, ComparePassword(hash, "hunter23"))
}
