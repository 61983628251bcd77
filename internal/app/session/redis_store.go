package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when no session exists for a user id.
type notFoundError struct{}

func (notFoundError) Error() string { return "session not found" }

var ErrNotFound error = notFoundError{}

// RedisStore is the production session store. Keys expire with the session, so
// Redis enforces the lifetime even if the application never reads the record again.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore creates a session store over the given Redis client.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "session:user:",
	}
}

func (s *RedisStore) key(telegramID int64) string {
	return s.prefix + strconv.FormatInt(telegramID, 10)
}

// Save persists the session with a TTL derived from its expiry. Saving overwrites any
// previous session for the same user, which is what keeps "one active session per
// user" true across device switches.
func (s *RedisStore) Save(ctx context.Context, sess Session) error {
	if sess.TelegramID == 0 {
		return errors.New("session telegram id cannot be zero")
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session is expired")
	}

	return s.client.Set(ctx, s.key(sess.TelegramID), data, ttl).Err()
}

// Get retrieves the session for a user id. Expired or missing records yield ErrNotFound.
func (s *RedisStore) Get(ctx context.Context, telegramID int64) (Session, error) {
	data, err := s.client.Get(ctx, s.key(telegramID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Session{}, ErrNotFound
		}
		return Session{}, fmt.Errorf("redis get: %w", err)
	}

	var sess Session
	if unmarshalErr := json.Unmarshal([]byte(data), &sess); unmarshalErr != nil {
		return Session{}, fmt.Errorf("unmarshal session: %w", unmarshalErr)
	}

	// Redis TTL should have evicted expired records already; double-check anyway.
	if sess.Expired(time.Now()) {
		if deleteErr := s.Delete(ctx, telegramID); deleteErr != nil {
			return Session{}, fmt.Errorf("cleanup expired session: %w", deleteErr)
		}
		return Session{}, ErrNotFound
	}

	return sess, nil
}

// Delete removes the session for a user id. Deleting a missing session is not an error.
func (s *RedisStore) Delete(ctx context.Context, telegramID int64) error {
	return s.client.Del(ctx, s.key(telegramID)).Err()
}
