package session

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const (
	idPrefix  = "sess_"
	keyPrefix = "sk_"

	// 32 bytes = 256 bits, comfortably above the unguessability floor.
	randomSize = 32
)

// NewID generates a session id: an operational prefix for grep-ability
// plus 256 bits from a cryptographically secure source.
func NewID() (string, error) {
	return randomWithPrefix(idPrefix)
}

// NewKey generates a session key, independent of the id.
func NewKey() (string, error) {
	return randomWithPrefix(keyPrefix)
}

func randomWithPrefix(prefix string) (string, error) {
	b := make([]byte, randomSize)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("session: failed to generate id: %w", err)
	}
	return prefix + base64.RawURLEncoding.EncodeToString(b), nil
}
