package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisSessionPrefix = "session:"

// RedisSessionStore keeps sessions in redis so they survive restarts and
// are visible to every instance behind a load balancer.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisSessionStore creates a redis-backed session store.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl, logger: logger}
}

func (s *RedisSessionStore) Create(ctx context.Context, identity Identity) (string, error) {
	token, err := newSessionToken()
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(identity)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session identity: %w", err)
	}

	// NX guards against the (theoretical) token collision.
	ok, err := s.client.SetNX(ctx, redisSessionPrefix+token, payload, s.ttl).Result()
	if err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("session token collision")
	}
	return token, nil
}

func (s *RedisSessionStore) IsValid(ctx context.Context, token string) bool {
	_, ok := s.Resolve(ctx, token)
	return ok
}

func (s *RedisSessionStore) Resolve(ctx context.Context, token string) (*Identity, bool) {
	if token == "" {
		return nil, false
	}

	payload, err := s.client.Get(ctx, redisSessionPrefix+token).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Error("Failed to read session from redis", zap.Error(err))
		}
		return nil, false
	}

	var identity Identity
	if err := json.Unmarshal(payload, &identity); err != nil {
		s.logger.Error("Failed to unmarshal session identity", zap.Error(err))
		return nil, false
	}

	// Sliding expiry: each authenticated request pushes the deadline out.
	if err := s.client.Expire(ctx, redisSessionPrefix+token, s.ttl).Err(); err != nil {
		s.logger.Warn("Failed to refresh session TTL", zap.Error(err))
	}

	return &identity, true
}

func (s *RedisSessionStore) Invalidate(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, redisSessionPrefix+token).Err(); err != nil {
		s.logger.Error("Failed to delete session from redis", zap.Error(err))
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
