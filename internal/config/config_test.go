package config

import (
	"testing"
	"time"
)

func TestLoadRateLimitConfigDefaults(t *testing.T) {
	cfg := LoadRateLimitConfig()
	if !cfg.Enabled {
		t.Fatal("limiter should default to enabled")
	}
	if cfg.Capacity != 100 || cfg.RefillTokens != 1 {
		t.Fatalf("capacity=%d refill=%d", cfg.Capacity, cfg.RefillTokens)
	}
	if cfg.KeyStrategy != "ip_route" || cfg.Prefix != "rl" {
		t.Fatalf("strategy=%q prefix=%q", cfg.KeyStrategy, cfg.Prefix)
	}
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "-10")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	if cfg.Capacity != 1 {
		t.Fatalf("capacity = %d, want clamp to 1", cfg.Capacity)
	}
	if cfg.RefillTokens != 1 {
		t.Fatalf("refill tokens = %d, want clamp to 1", cfg.RefillTokens)
	}
	if cfg.TTL != 10*time.Second {
		t.Fatalf("ttl = %v, want 5x refill interval", cfg.TTL)
	}
}

func TestLoadCacheConfig(t *testing.T) {
	cfg := LoadCacheConfig()
	if !cfg.Enabled {
		t.Fatal("cache should default to enabled")
	}
	if cfg.TTL != 15*time.Second {
		t.Fatalf("ttl = %v", cfg.TTL)
	}
	if !cfg.Methods["GET"] || cfg.Methods["POST"] {
		t.Fatalf("methods = %v", cfg.Methods)
	}
}

func TestParseMethods(t *testing.T) {
	m := parseMethods("get, head ,POST")
	for _, want := range []string{"GET", "HEAD", "POST"} {
		if !m[want] {
			t.Fatalf("methods %v missing %s", m, want)
		}
	}
	if len(parseMethods("")) != 0 {
		t.Fatal("empty list should parse to no methods")
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("X_BOOL", "off")
	if envBool("X_BOOL", true) {
		t.Fatal(`envBool("off") = true`)
	}
	t.Setenv("X_INT", "not-a-number")
	if got := envInt("X_INT", 7); got != 7 {
		t.Fatalf("envInt fallback = %d", got)
	}
	t.Setenv("X_DUR", "250ms")
	if got := envDur("X_DUR", time.Second); got != 250*time.Millisecond {
		t.Fatalf("envDur = %v", got)
	}
}
