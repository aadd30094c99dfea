package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hirable/webgate/internal/infrastructure/redis"
	pkgerrors "github.com/hirable/webgate/pkg/errors"
)

// RedisStore persists one credential per gateway session in Redis, so a
// session survives gateway restarts the way a browser's storage survives
// page loads. The TTL bounds how long an orphaned credential can linger;
// expiry of the credential itself is still enforced by the Decoder.
type RedisStore struct {
	client    redis.RedisClient
	sessionID string
	ttl       time.Duration
}

func NewRedisStore(client redis.RedisClient, sessionID string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, sessionID: sessionID, ttl: ttl}
}

func (s *RedisStore) key() string {
	return fmt.Sprintf("session:%s:%s", s.sessionID, StorageKey)
}

func (s *RedisStore) Get(ctx context.Context) (string, error) {
	val, err := s.client.Get(ctx, s.key())
	if errors.Is(err, redis.ErrKeyNotFound) {
		return "", pkgerrors.ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", pkgerrors.ErrStorageUnavailable, err)
	}
	return val, nil
}

func (s *RedisStore) Set(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, s.key(), token, s.ttl); err != nil {
		return fmt.Errorf("%w: %v", pkgerrors.ErrStorageUnavailable, err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key()); err != nil {
		return fmt.Errorf("%w: %v", pkgerrors.ErrStorageUnavailable, err)
	}
	return nil
}
