package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_PATH", "ALLOWED_ORIGIN", "JWT_SECRET", "TOKEN_TTL_HOURS", "REDIS_ADDR", "REDIS_DB", "PREVIEW_TTL_SECONDS", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8080" || cfg.Address() != ":8080" {
		t.Fatalf("unexpected port %q", cfg.Port)
	}
	if cfg.DBPath != "./data/tabsplit.db" {
		t.Fatalf("unexpected DB path %q", cfg.DBPath)
	}
	if cfg.TokenTTL() != 24*time.Hour {
		t.Fatalf("unexpected token TTL %v", cfg.TokenTTL())
	}
	if cfg.PreviewTTL() != time.Minute {
		t.Fatalf("unexpected preview TTL %v", cfg.PreviewTTL())
	}
	if cfg.RedisAddr != "" || cfg.RedisDB != 0 {
		t.Fatalf("redis should be off by default, got %q/%d", cfg.RedisAddr, cfg.RedisDB)
	}
}

func TestLoadDoesNotInjectWeakSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg := Load()
	if cfg.JWTSecret != "" {
		t.Fatalf("expected empty JWT_SECRET when unset, got %q", cfg.JWTSecret)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected Validate to reject missing secret")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TOKEN_TTL_HOURS", "-3")
	t.Setenv("PREVIEW_TTL_SECONDS", "15")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("JWT_SECRET", "  0123456789abcdef0123456789abcdef  ")

	cfg := Load()
	if cfg.Address() != ":9090" {
		t.Fatalf("unexpected address %q", cfg.Address())
	}
	if cfg.TokenTTLHours != 24 {
		t.Fatalf("negative TTL should fall back to 24, got %d", cfg.TokenTTLHours)
	}
	if cfg.PreviewTTL() != 15*time.Second || cfg.RedisDB != 2 {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
}

func TestValidateShortSecret(t *testing.T) {
	cfg := Config{Port: "8080", JWTSecret: "too-short"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected short secret to be rejected")
	}
}
