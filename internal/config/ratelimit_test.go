package config

import (
	"testing"
	"time"
)

func clearRateLimitEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"RATE_LIMIT_ENABLED", "RATE_LIMIT_CAPACITY", "RATE_LIMIT_REFILL_TOKENS",
		"RATE_LIMIT_REFILL_INTERVAL", "RATE_LIMIT_TTL", "RATE_LIMIT_KEY_STRATEGY",
		"RATE_LIMIT_PREFIX", "RATE_LIMIT_DEBUG", "RATE_LIMIT_BURST", "RATE_LIMIT_REFILL_EVERY",
	}
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoadRateLimitConfigDefaults(t *testing.T) {
	clearRateLimitEnv(t)

	cfg := LoadRateLimitConfig()
	if !cfg.Enabled {
		t.Error("Enabled = false, want true by default")
	}
	if cfg.Capacity != 60 {
		t.Errorf("Capacity = %d, want 60", cfg.Capacity)
	}
	if cfg.RefillTokens != 1 || cfg.RefillInterval != time.Second {
		t.Errorf("refill = %d per %s, want 1 per 1s", cfg.RefillTokens, cfg.RefillInterval)
	}
	if cfg.TTL != 10*time.Minute {
		t.Errorf("TTL = %s, want 10m", cfg.TTL)
	}
	if cfg.KeyStrategy != "ip_user_route" || cfg.Prefix != "rl" {
		t.Errorf("key strategy/prefix = %q/%q, want ip_user_route/rl", cfg.KeyStrategy, cfg.Prefix)
	}
}

func TestLoadRateLimitConfigOverrides(t *testing.T) {
	clearRateLimitEnv(t)
	t.Setenv("RATE_LIMIT_BURST", "10")
	t.Setenv("RATE_LIMIT_REFILL_EVERY", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")
	t.Setenv("RATE_LIMIT_ENABLED", "off")

	cfg := LoadRateLimitConfig()
	if cfg.Enabled {
		t.Error("Enabled = true, want false with RATE_LIMIT_ENABLED=off")
	}
	if cfg.Capacity != 10 {
		t.Errorf("Capacity = %d, want burst override 10", cfg.Capacity)
	}
	if cfg.RefillTokens != 1 || cfg.RefillInterval != 2*time.Second {
		t.Errorf("refill = %d per %s, want 1 per 2s", cfg.RefillTokens, cfg.RefillInterval)
	}
	// TTL is floored at five refill intervals.
	if cfg.TTL != 10*time.Second {
		t.Errorf("TTL = %s, want floor of 10s", cfg.TTL)
	}
}
