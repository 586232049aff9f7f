package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"APP_ADDR", "DATABASE_URL", "JWT_SECRET", "TOKEN_TTL", "APP_ENV",
		"MAX_BODY_BYTES", "RATE_LIMIT_PER_MINUTE", "METRICS_ENABLED",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Addr != ":8080" {
		t.Fatalf("default addr, got %q", cfg.Addr)
	}
	if cfg.TokenTTL != 12*time.Hour {
		t.Fatalf("default token ttl, got %v", cfg.TokenTTL)
	}
	if cfg.Environment != "development" {
		t.Fatalf("default environment, got %q", cfg.Environment)
	}
	if cfg.RateLimitPerMinute != 120 {
		t.Fatalf("default rate limit, got %d", cfg.RateLimitPerMinute)
	}
	if !cfg.MetricsEnabled {
		t.Fatal("metrics default on")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ADDR", ":9999")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "10")
	t.Setenv("METRICS_ENABLED", "false")

	cfg := Load()
	if cfg.Addr != ":9999" {
		t.Fatalf("addr override, got %q", cfg.Addr)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Fatalf("ttl override, got %v", cfg.TokenTTL)
	}
	if cfg.RateLimitPerMinute != 10 {
		t.Fatalf("rate limit override, got %d", cfg.RateLimitPerMinute)
	}
	if cfg.MetricsEnabled {
		t.Fatal("metrics override off")
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("TOKEN_TTL", "soon")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "lots")
	t.Setenv("METRICS_ENABLED", "maybe")

	cfg := Load()
	if cfg.TokenTTL != 12*time.Hour {
		t.Fatalf("malformed duration should fall back, got %v", cfg.TokenTTL)
	}
	if cfg.RateLimitPerMinute != 120 {
		t.Fatalf("malformed int should fall back, got %d", cfg.RateLimitPerMinute)
	}
	if !cfg.MetricsEnabled {
		t.Fatal("malformed bool should fall back")
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		DatabaseURL:        "postgres://localhost/ats",
		MaxBodyBytes:       1 << 20,
		RateLimitPerMinute: 120,
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	missing := base
	missing.DatabaseURL = " "
	if err := missing.Validate(); err == nil {
		t.Fatal("empty database url must fail")
	}

	prod := base
	prod.Environment = "production"
	if err := prod.Validate(); err == nil {
		t.Fatal("production without a jwt secret must fail")
	}
	prod.JWTSecret = "strong-secret"
	prod.RunSeed = true
	if err := prod.Validate(); err == nil {
		t.Fatal("production seeding without an admin password must fail")
	}
	prod.SeedAdminPass = "changeme"
	if err := prod.Validate(); err != nil {
		t.Fatalf("production config rejected: %v", err)
	}

	tiny := base
	tiny.MaxBodyBytes = 100
	if err := tiny.Validate(); err == nil {
		t.Fatal("tiny body limit must fail")
	}
}
