package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	domain "userdeck/internal/domain/user"
)

// RedisStateStore keeps session state in Redis as JSON with a sliding TTL.
type RedisStateStore struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisStateStore creates a new Redis-backed session state store.
func NewRedisStateStore(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisStateStore {
	return &RedisStateStore{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

// cacheKey generates a Redis key for a session ID.
func (c *RedisStateStore) cacheKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

// Get retrieves session state from Redis. A miss returns nil, nil.
func (c *RedisStateStore) Get(ctx context.Context, sessionID string) (*domain.State, error) {
	data, err := c.client.Get(ctx, c.cacheKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.log.Debug("session cache miss", zap.String("session_id", sessionID))
		return nil, nil
	}
	if err != nil {
		c.log.Error("failed to get session state", zap.String("session_id", sessionID), zap.Error(err))
		return nil, err
	}

	var state domain.State
	if err := json.Unmarshal(data, &state); err != nil {
		c.log.Error("failed to unmarshal session state", zap.String("session_id", sessionID), zap.Error(err))
		return nil, err
	}

	return &state, nil
}

// Save stores session state and restarts its TTL.
func (c *RedisStateStore) Save(ctx context.Context, sessionID string, state domain.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal session state: %w", err)
	}

	if err := c.client.Set(ctx, c.cacheKey(sessionID), data, c.ttl).Err(); err != nil {
		c.log.Error("failed to save session state", zap.String("session_id", sessionID), zap.Error(err))
		return err
	}

	c.log.Debug("saved session state", zap.String("session_id", sessionID), zap.Int("users", len(state.Users)))
	return nil
}

// Delete removes session state from Redis.
func (c *RedisStateStore) Delete(ctx context.Context, sessionID string) error {
	if err := c.client.Del(ctx, c.cacheKey(sessionID)).Err(); err != nil {
		c.log.Error("failed to delete session state", zap.String("session_id", sessionID), zap.Error(err))
		return err
	}
	return nil
}
