package redis

import (
	"testing"
	"time"
)

func TestNormalizeAppliesDefaults(t *testing.T) {
	opts := Options{Addr: "127.0.0.1:6379"}.normalize()

	if opts.PoolSize != 10 {
		t.Fatalf("expected default pool size 10, got %d", opts.PoolSize)
	}
	if opts.PingTimeout != 2*time.Second {
		t.Fatalf("expected default ping timeout 2s, got %v", opts.PingTimeout)
	}
}

func TestNormalizeKeepsExplicitValues(t *testing.T) {
	opts := Options{
		Addr:        "127.0.0.1:6379",
		PoolSize:    32,
		PingTimeout: 500 * time.Millisecond,
	}.normalize()

	if opts.PoolSize != 32 {
		t.Fatalf("expected pool size 32, got %d", opts.PoolSize)
	}
	if opts.PingTimeout != 500*time.Millisecond {
		t.Fatalf("expected ping timeout 500ms, got %v", opts.PingTimeout)
	}
}
