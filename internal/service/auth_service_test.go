package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthhelpdesk/helpdesk-service/internal/config"
	"github.com/healthhelpdesk/helpdesk-service/internal/repository"
)

func newTestAuthService() *AuthService {
	cfg := config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 15,
		BcryptCost:            4,
	}
	return NewAuthService(cfg, repository.NewMemoryUserRepository())
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestAuthService()

	user, token, expiresAt, err := svc.Register(context.Background(), "Dana Kim", "Dana@Example.com", "s3cretpass")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "dana@example.com", user.Email)
	assert.NotEqual(t, "s3cretpass", user.PasswordHash)
	assert.NotEmpty(t, token)
	assert.False(t, expiresAt.IsZero())

	t.Run("login with original casing", func(t *testing.T) {
		loggedIn, token, _, err := svc.Login(context.Background(), "DANA@example.com", "s3cretpass")
		require.NoError(t, err)
		assert.Equal(t, user.ID, loggedIn.ID)
		assert.NotEmpty(t, token)
	})

	t.Run("token resolves back to the user", func(t *testing.T) {
		claims, err := svc.TokenManager().ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
	})
}

func TestRegister_Validation(t *testing.T) {
	svc := newTestAuthService()

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		field    string
	}{
		{"missing name", "", "a@b.co", "longenough", "name"},
		{"bad email", "Dana", "not-an-email", "longenough", "email"},
		{"short password", "Dana", "a@b.co", "short", "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := svc.Register(context.Background(), tt.userName, tt.email, tt.password)
			require.Error(t, err)
			domainErr := asDomainError(t, err)
			assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
			assert.Contains(t, domainErr.Details, tt.field)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newTestAuthService()

	_, _, _, err := svc.Register(context.Background(), "Dana", "dana@example.com", "s3cretpass")
	require.NoError(t, err)

	_, _, _, err = svc.Register(context.Background(), "Other Dana", "DANA@example.com", "different1")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", asDomainError(t, err).Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := newTestAuthService()
	_, _, _, err := svc.Register(context.Background(), "Dana", "dana@example.com", "s3cretpass")
	require.NoError(t, err)

	t.Run("wrong password", func(t *testing.T) {
		_, _, _, err := svc.Login(context.Background(), "dana@example.com", "wrongpass1")
		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", asDomainError(t, err).Code)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, _, err := svc.Login(context.Background(), "nobody@example.com", "s3cretpass")
		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", asDomainError(t, err).Code)
	})
}
