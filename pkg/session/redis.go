package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/pkg/redis"
)

const keyPrefix = "session:"

// KV is the subset of the Redis client the store needs.
type KV interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Del(ctx context.Context, key string) error
}

// RedisStore keeps sessions in Redis with a native TTL.
type RedisStore struct {
	kv  KV
	ttl time.Duration
	now func() time.Time
}

// NewRedisStore creates a Redis-backed store whose sessions live for ttl.
func NewRedisStore(kv KV, ttl time.Duration) *RedisStore {
	return &RedisStore{kv: kv, ttl: ttl, now: time.Now}
}

func (s *RedisStore) Create(ctx context.Context, userID int64, username string) (*Session, error) {
	now := s.now()
	sess := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	b, err := json.Marshal(sess)
	if err != nil {
		return nil, err
	}
	if err := s.kv.Set(ctx, keyPrefix+sess.ID, b, s.ttl); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return sess, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	b, err := s.kv.Get(ctx, keyPrefix+id)
	if err != nil {
		if errors.Is(err, redis.ErrNil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if sess.Expired(s.now()) {
		return nil, ErrNotFound
	}
	return &sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.kv.Del(ctx, keyPrefix+id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
