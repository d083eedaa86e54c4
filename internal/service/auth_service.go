package service

import (
	"context"
	"strings"
	"time"

	"github.com/healthhelpdesk/helpdesk-service/internal/auth"
	"github.com/healthhelpdesk/helpdesk-service/internal/config"
	"github.com/healthhelpdesk/helpdesk-service/internal/domain"
	"github.com/healthhelpdesk/helpdesk-service/internal/repository"
	"github.com/healthhelpdesk/helpdesk-service/pkg/util/errorutil"
)

// AuthService handles dashboard account registration and login.
type AuthService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
	cfg    config.AuthConfig
}

// NewAuthService constructs the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:  users,
		tokens: auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		cfg:    cfg,
	}
}

// TokenManager exposes the token manager for the auth middleware.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// Register creates a new account and returns a signed access token.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, string, time.Time, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	details := map[string]any{}
	if name == "" {
		details["name"] = "Name is required"
	}
	if !emailPattern.MatchString(email) {
		details["email"] = "Invalid email address"
	}
	if len(password) < 8 {
		details["password"] = "Password must be at least 8 characters"
	}
	if len(details) > 0 {
		return nil, "", time.Time{}, errorutil.NewValidationError("registration validation failed", details)
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if existing != nil {
		return nil, "", time.Time{}, errorutil.NewConflict("email already registered", nil)
	}

	hash, err := auth.HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{Name: name, Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, expiresAt, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, expiresAt, nil
}

// Login verifies credentials and returns a signed access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		return nil, "", time.Time{}, errorutil.NewUnauthorized("invalid credentials")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, errorutil.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, expiresAt, nil
}
