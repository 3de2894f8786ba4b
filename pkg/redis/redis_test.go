package redis

import (
	"context"
	"testing"

	"github.com/equimetrics/backend/pkg/config"
)

func TestNewClient_Disabled(t *testing.T) {
	cfg := &config.Config{
		Redis: config.RedisConfig{
			Enabled: false,
		},
	}

	client, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if client.Enabled() {
		t.Error("Expected client to be disabled")
	}

	// A disabled client reports healthy and closes cleanly.
	if err := client.Ping(context.Background()); err != nil {
		t.Errorf("Ping() on disabled client = %v, want nil", err)
	}
	if err := client.Close(); err != nil {
		t.Errorf("Close() on disabled client = %v, want nil", err)
	}
}

func TestRateLimiter_Disabled(t *testing.T) {
	cfg := &config.Config{
		Redis: config.RedisConfig{
			Enabled: false,
		},
	}

	client, _ := New(cfg)
	limiter := NewRateLimiter(client, "test")

	// When Redis is disabled, all requests should be allowed
	allowed, remaining, err := limiter.Allow(nil, FMPRateLimit)
	if err != nil {
		t.Fatalf("Allow() error = %v", err)
	}
	if !allowed {
		t.Error("Expected request to be allowed when Redis disabled")
	}
	if remaining != FMPRateLimit.Limit {
		t.Errorf("Expected remaining = %d, got %d", FMPRateLimit.Limit, remaining)
	}
}

func TestCache_Disabled(t *testing.T) {
	cfg := &config.Config{
		Redis: config.RedisConfig{
			Enabled: false,
		},
	}

	client, _ := New(cfg)
	cache := NewCache(client, "test")

	// When Redis is disabled, cache operations should be no-ops
	var result string
	found, err := cache.Get(nil, "key", &result)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Error("Expected cache miss when Redis disabled")
	}
}

func TestCacheKeys(t *testing.T) {
	tests := []struct {
		name     string
		fn       func() string
		expected string
	}{
		{
			name:     "SnapshotKey",
			fn:       func() string { return SnapshotKey("AAPL") },
			expected: "snapshot:AAPL",
		},
		{
			name:     "StatementsKey",
			fn:       func() string { return StatementsKey("AAPL", "quarter") },
			expected: "statements:AAPL:quarter",
		},
		{
			name:     "EstimatesKey",
			fn:       func() string { return EstimatesKey("MSFT", "annual") },
			expected: "estimates:MSFT:annual",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}
