package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps sessions in Redis under "sess:<token-hash>" with a
// TTL, so sessions expire server-side without any cleanup job.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore returns a store writing to the given client.  TTL must
// be positive; it is both the key expiry and the session lifetime.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func sessionKey(token string) string { return "sess:" + hashToken(token) }

// Create starts a session and returns the raw token.
func (s *RedisStore) Create(ctx context.Context, a Admin) (string, error) {
	token, err := NewToken()
	if err != nil {
		return "", err
	}
	body, err := json.Marshal(a)
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, sessionKey(token), body, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Get resolves a raw token to its admin record.
func (s *RedisStore) Get(ctx context.Context, token string) (Admin, error) {
	body, err := s.rdb.Get(ctx, sessionKey(token)).Bytes()
	if err == redis.Nil {
		return Admin{}, ErrNoSession
	}
	if err != nil {
		return Admin{}, err
	}
	var a Admin
	if err := json.Unmarshal(body, &a); err != nil {
		return Admin{}, err
	}
	return a, nil
}

// Update replaces the stored admin record, keeping the remaining TTL.
func (s *RedisStore) Update(ctx context.Context, token string, a Admin) error {
	body, err := json.Marshal(a)
	if err != nil {
		return err
	}
	ok, err := s.rdb.SetXX(ctx, sessionKey(token), body, redis.KeepTTL).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoSession
	}
	return nil
}

// Destroy terminates the session.
func (s *RedisStore) Destroy(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, sessionKey(token)).Err()
}
