package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/healthhelpdesk/helpdesk-service/internal/config"
)

const sessionKeyPrefix = "chat:session:"

// Redis wraps the go-redis client and tracks chat session activity.
type Redis struct {
	Client     *redis.Client
	sessionTTL time.Duration
}

// NewRedis connects to Redis using the provided configuration.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &Redis{Client: client, sessionTTL: cfg.SessionTTL()}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}

// TouchSession marks a chat session as recently active, refreshing its TTL.
func (r *Redis) TouchSession(ctx context.Context, sessionID string) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Set(ctx, sessionKeyPrefix+sessionID, time.Now().UTC().Format(time.RFC3339), r.sessionTTL).Err()
}

// SessionActive reports whether a session was touched within the TTL window.
func (r *Redis) SessionActive(ctx context.Context, sessionID string) (bool, error) {
	if r == nil || r.Client == nil {
		return false, errors.New("redis client not configured")
	}
	count, err := r.Client.Exists(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
