package session

import (
	"context"
	"time"
)

// TTL is the session lifetime, fixed at creation.
const TTL = 24 * time.Hour

// Session represents one authenticated browsing/API context.
// It is created once, read-only thereafter, and reclaimed by logout or
// expiry.
type Session struct {
	// SessionID is the public handle sent to the client and used as the
	// store key.
	SessionID string `json:"session_id"`

	// SessionKey is a second, independent secret. Bearer-style clients
	// must present it alongside SessionID, so a leaked id alone (logs,
	// referrers) is not enough to authenticate.
	SessionKey string `json:"session_key"`

	// UserID references a user record owned by the user store. Opaque
	// here, never validated by this package.
	UserID int64 `json:"user_id"`

	// ExpiresAt is absolute and immutable after creation.
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at the given
// instant. The store's native TTL is defense in depth only; this check
// is the authoritative one.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// Store defines how sessions are created, retrieved and deleted.
// Get returns (nil, nil) for absent, expired or unreadable sessions;
// callers must not be able to conflate "no session" with "store broken".
type Store interface {
	Create(ctx context.Context, userID int64) (*Session, error)
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}
