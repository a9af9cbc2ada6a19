package config

import (
	"testing"
	"time"
)

func TestCapacityDefaultAndClamp(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"", 1},
		{"3", 3},
		{"0", 1},
		{"-5", 1},
		{"banana", 1},
	}
	for _, tc := range cases {
		t.Setenv("SLOT_CAPACITY", tc.raw)
		if got := capacity(); got != tc.want {
			t.Errorf("SLOT_CAPACITY=%q: capacity() = %d, want %d", tc.raw, got, tc.want)
		}
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("X_STR", "hello")
	t.Setenv("X_BOOL", "yes")
	t.Setenv("X_INT", "42")
	t.Setenv("X_DUR", "250ms")

	if got := envStr("X_STR", "d"); got != "hello" {
		t.Errorf("envStr = %q", got)
	}
	if got := envStr("X_MISSING", "d"); got != "d" {
		t.Errorf("envStr default = %q", got)
	}
	if !envBool("X_BOOL", false) {
		t.Error("envBool(yes) = false")
	}
	if envBool("X_MISSING", false) {
		t.Error("envBool default = true")
	}
	if got := envInt("X_INT", 0); got != 42 {
		t.Errorf("envInt = %d", got)
	}
	if got := envDur("X_DUR", time.Second); got != 250*time.Millisecond {
		t.Errorf("envDur = %v", got)
	}
	if got := envDur("X_MISSING", time.Second); got != time.Second {
		t.Errorf("envDur default = %v", got)
	}
}

func TestEnvHelpersBadValues(t *testing.T) {
	t.Setenv("X_BOOL", "maybe")
	t.Setenv("X_INT", "many")
	t.Setenv("X_DUR", "soon")

	if !envBool("X_BOOL", true) {
		t.Error("envBool falls back to default on junk")
	}
	if got := envInt("X_INT", 7); got != 7 {
		t.Errorf("envInt junk = %d, want 7", got)
	}
	if got := envDur("X_DUR", time.Minute); got != time.Minute {
		t.Errorf("envDur junk = %v, want 1m", got)
	}
}

func TestLoadRateLimitConfigGuards(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-3")
	t.Setenv("RATE_LIMIT_TTL", "1ms")

	cfg := LoadRateLimitConfig()
	if cfg.Capacity != 1 {
		t.Errorf("Capacity = %d, want 1", cfg.Capacity)
	}
	if cfg.RefillTokens != 1 {
		t.Errorf("RefillTokens = %d, want 1", cfg.RefillTokens)
	}
	if cfg.TTL < 5*cfg.RefillInterval {
		t.Errorf("TTL = %v, below refill window", cfg.TTL)
	}
}
