package credentials

import (
	"errors"
	"strings"
	"testing"
)

const testPepper = "0123456789abcdef0123456789abcdef0123456789abcdef" // 48 bytes

func newTestHasher(t *testing.T) *Hasher {
	t.Helper()
	h, err := New(testPepper)
	if err != nil {
		t.Fatalf("new hasher: %v", err)
	}
	return h
}

func TestNewRejectsBadPepper(t *testing.T) {
	if _, err := New(""); !errors.Is(err, ErrPepperSize) {
		t.Fatalf("expected ErrPepperSize for empty pepper, got %v", err)
	}
	if _, err := New("too short"); !errors.Is(err, ErrPepperSize) {
		t.Fatalf("expected ErrPepperSize for short pepper, got %v", err)
	}
	if _, err := New(testPepper + "x"); !errors.Is(err, ErrPepperSize) {
		t.Fatalf("expected ErrPepperSize for long pepper, got %v", err)
	}
}

func TestHashVerifyRoundTrip(t *testing.T) {
	h := newTestHasher(t)

	hash, err := h.Hash("Sup3rSecret!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("expected self-describing argon2id hash, got %q", hash)
	}

	ok, err := h.Verify("Sup3rSecret!", hash)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Fatal("expected correct password to verify")
	}

	ok, err = h.Verify("wrong", hash)
	if err != nil {
		t.Fatalf("verify wrong password: %v", err)
	}
	if ok {
		t.Fatal("expected wrong password to fail verification")
	}
}

func TestHashSaltsAreUnique(t *testing.T) {
	h := newTestHasher(t)

	first, err := h.Hash("Sup3rSecret!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := h.Hash("Sup3rSecret!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if first == second {
		t.Fatal("expected two hashes of the same password to differ")
	}

	for _, hash := range []string{first, second} {
		ok, err := h.Verify("Sup3rSecret!", hash)
		if err != nil {
			t.Fatalf("verify: %v", err)
		}
		if !ok {
			t.Fatalf("expected hash %q to verify", hash)
		}
	}
}

func TestVerifyRejectsMalformedHashes(t *testing.T) {
	h := newTestHasher(t)

	malformed := []string{
		"",
		"not a hash",
		"$argon2id$v=19$m=65536,t=1,p=4$onlyonesegment",
		"$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$a2V5",
		"$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$a2V5",
		"$argon2id$v=19$m=65536$c2FsdA$a2V5",
		"$argon2id$v=19$m=65536,t=1,p=4$!!!$a2V5",
		"$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$!!!",
		// Hostile parameters must be rejected, not handed to the KDF:
		// zero rounds and zero parallelism make it panic, and an
		// oversized memory cost is an allocation bomb.
		"$argon2id$v=19$m=65536,t=0,p=4$c2FsdA$a2V5",
		"$argon2id$v=19$m=65536,t=1,p=0$c2FsdA$a2V5",
		"$argon2id$v=19$m=0,t=1,p=4$c2FsdA$a2V5",
		"$argon2id$v=19$m=4294967295,t=1,p=4$c2FsdA$a2V5",
	}

	for _, stored := range malformed {
		if _, err := h.Verify("Sup3rSecret!", stored); !errors.Is(err, ErrMalformedHash) {
			t.Fatalf("expected ErrMalformedHash for %q, got %v", stored, err)
		}
	}
}

func TestPepperChangesHashOutcome(t *testing.T) {
	h := newTestHasher(t)

	hash, err := h.Hash("Sup3rSecret!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	other, err := New(strings.Repeat("z", PepperLength))
	if err != nil {
		t.Fatalf("new hasher: %v", err)
	}

	ok, err := other.Verify("Sup3rSecret!", hash)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ok {
		t.Fatal("expected verification to fail under a different pepper")
	}
}
