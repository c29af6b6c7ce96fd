package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"identity-service/internal/logger"
)

var (
	errCorruptRecord = errors.New("session: corrupt record")
	errExpiredRecord = errors.New("session: expired record")
)

type RedisStore struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "session:",
		now:    time.Now,
	}
}

func (r *RedisStore) key(sessionID string) string {
	return r.prefix + sessionID
}

// Create generates a fresh session for userID and writes it in a single
// atomic SET. The key's native expiry is set to the same absolute
// instant as expires_at, millisecond precision.
func (r *RedisStore) Create(ctx context.Context, userID int64) (*Session, error) {
	id, err := NewID()
	if err != nil {
		return nil, err
	}
	key, err := NewKey()
	if err != nil {
		return nil, err
	}

	s := &Session{
		SessionID:  id,
		SessionKey: key,
		UserID:     userID,
		ExpiresAt:  r.now().Add(TTL),
	}

	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("session: failed to marshal: %w", err)
	}

	err = r.client.Do(ctx, "set", r.key(s.SessionID), data, "pxat", s.ExpiresAt.UnixMilli()).Err()
	if err != nil {
		return nil, fmt.Errorf("session: failed to create: %w", err)
	}

	return s, nil
}

// Get resolves a session id. Absent keys, corrupt payloads and sessions
// the TTL should already have reclaimed all come back as (nil, nil).
func (r *RedisStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	val, err := r.client.Get(ctx, r.key(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil // not found
	}
	if err != nil {
		return nil, fmt.Errorf("session: failed to get: %w", err)
	}

	s, err := decodeRecord([]byte(val), r.now())
	switch {
	case errors.Is(err, errCorruptRecord):
		// A corrupt session must never be treated as valid.
		logger.Error("session payload unreadable, treating as absent", map[string]any{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return nil, nil
	case errors.Is(err, errExpiredRecord):
		// TTL drift self-healing. Fire-and-forget: the delete failing
		// must not fail the read.
		_ = r.client.Del(ctx, r.key(sessionID)).Err()
		return nil, nil
	}

	return s, nil
}

// decodeRecord parses a stored payload and applies the authoritative
// expiry check. The store's native TTL should have reclaimed expired
// keys already, but the two clocks can disagree and this check wins.
func decodeRecord(data []byte, now time.Time) (*Session, error) {
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", errCorruptRecord, err)
	}
	if s.Expired(now) {
		return nil, errExpiredRecord
	}
	return &s, nil
}

// Delete removes a session unconditionally. Deleting a key that never
// existed is success, not an error.
func (r *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("session: failed to delete: %w", err)
	}
	return nil
}
