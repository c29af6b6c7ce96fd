package credentials

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// PepperLength is the required byte length of the server-wide pepper.
const PepperLength = 48

const (
	argonTime    = 1
	argonMemory  = 64 * 1024 // KiB
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16
)

var (
	// ErrPepperSize means the configured pepper is absent or has the
	// wrong length. This is a startup-class failure: a hasher must never
	// be constructed without a valid pepper.
	ErrPepperSize = errors.New("credentials: pepper must be exactly 48 bytes")

	// ErrMalformedHash means a stored hash could not be parsed, either
	// because it is corrupt or was produced by an incompatible version.
	ErrMalformedHash = errors.New("credentials: malformed password hash")
)

// Hasher hashes and verifies passwords using a two-stage argon2id scheme.
//
// Stage 1 derives a peppered representation of the password, keyed with
// the server-wide pepper as salt material. Stage 2 hashes that
// representation again with a fresh per-call random salt. A stolen
// credential store is useless without the separately-held pepper, and
// the per-record salt defeats precomputation.
type Hasher struct {
	pepper []byte
}

// New builds a Hasher around the process-wide pepper. The pepper is
// injected here once, at startup, never read ambiently per call.
func New(pepper string) (*Hasher, error) {
	if len(pepper) != PepperLength {
		return nil, ErrPepperSize
	}
	return &Hasher{pepper: []byte(pepper)}, nil
}

// Hash produces a self-describing hash string for the given password.
// Two calls with the same password yield different strings (fresh salt)
// that both verify.
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("credentials: generate salt: %w", err)
	}

	peppered := h.pepperPassword(password)
	key := argon2.IDKey(peppered, salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return encodeHash(salt, key), nil
}

// Verify reports whether password matches the stored hash.
// A well-formed hash with a mismatching password returns (false, nil);
// an unparsable hash returns ErrMalformedHash.
func (h *Hasher) Verify(password, stored string) (bool, error) {
	params, salt, key, err := decodeHash(stored)
	if err != nil {
		return false, err
	}

	peppered := h.pepperPassword(password)
	candidate := argon2.IDKey(
		peppered,
		salt,
		params.time,
		params.memory,
		params.threads,
		uint32(len(key)),
	)

	return subtle.ConstantTimeCompare(candidate, key) == 1, nil
}

// pepperPassword is stage 1: deterministic in the pepper, so the same
// password always peppers to the same bytes within one deployment.
func (h *Hasher) pepperPassword(password string) []byte {
	return argon2.IDKey([]byte(password), h.pepper, argonTime, argonMemory, argonThreads, argonKeyLen)
}

type hashParams struct {
	memory  uint32
	time    uint32
	threads uint8
}

// maxMemory caps the memory cost a stored hash may demand, so a corrupt
// row cannot turn verification into an unbounded allocation.
const maxMemory = 4 * argonMemory

// sane rejects parameter combinations the KDF would refuse (it panics
// on zero rounds or zero parallelism) or that no hash this service ever
// produced could carry.
func (p hashParams) sane() bool {
	if p.time < 1 || p.threads < 1 {
		return false
	}
	if p.memory < 8*uint32(p.threads) || p.memory > maxMemory {
		return false
	}
	return true
}

// encodeHash renders the standard PHC form:
// $argon2id$v=19$m=65536,t=1,p=4$<b64 salt>$<b64 key>
func encodeHash(salt, key []byte) string {
	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argonMemory,
		argonTime,
		argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
}

func decodeHash(stored string) (hashParams, []byte, []byte, error) {
	parts := strings.Split(stored, "$")
	if len(parts) != 6 || parts[0] != "" {
		return hashParams{}, nil, nil, ErrMalformedHash
	}

	if parts[1] != "argon2id" {
		return hashParams{}, nil, nil, ErrMalformedHash
	}

	var version int
	if n, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || n != 1 {
		return hashParams{}, nil, nil, ErrMalformedHash
	}
	if version != argon2.Version {
		return hashParams{}, nil, nil, ErrMalformedHash
	}

	var params hashParams
	n, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.memory, &params.time, &params.threads)
	if err != nil || n != 3 {
		return hashParams{}, nil, nil, ErrMalformedHash
	}
	if !params.sane() {
		return hashParams{}, nil, nil, ErrMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return hashParams{}, nil, nil, ErrMalformedHash
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return hashParams{}, nil, nil, ErrMalformedHash
	}

	return params, salt, key, nil
}
