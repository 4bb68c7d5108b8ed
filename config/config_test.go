package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Environment != "development" {
		t.Errorf("Environment = %q, want development", cfg.Server.Environment)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "*" {
		t.Errorf("AllowedOrigins = %v, want [*]", cfg.Server.AllowedOrigins)
	}
	if cfg.Store.Type != "memory" {
		t.Errorf("Store.Type = %q, want memory", cfg.Store.Type)
	}
	if cfg.RateLimit.PerIP != 10.0 {
		t.Errorf("RateLimit.PerIP = %v, want 10.0", cfg.RateLimit.PerIP)
	}
	if cfg.RateLimit.Burst != 20 {
		t.Errorf("RateLimit.Burst = %d, want 20", cfg.RateLimit.Burst)
	}
	if cfg.Parser.EnableDebugLogging {
		t.Error("EnableDebugLogging = true, want false")
	}
	if cfg.Parser.MaxTextBytes != 10*1024*1024 {
		t.Errorf("MaxTextBytes = %d, want 10MiB", cfg.Parser.MaxTextBytes)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PROMOLENS_SERVER_PORT", "9090")
	t.Setenv("PROMOLENS_SERVER_ENVIRONMENT", "production")
	t.Setenv("PROMOLENS_STORE_TYPE", "sqlite")
	t.Setenv("PROMOLENS_STORE_SQLITE_PATH", "/tmp/promolens.db")
	t.Setenv("PROMOLENS_RATELIMIT_PER_IP", "25")
	t.Setenv("PROMOLENS_PARSER_ENABLE_DEBUG_LOGGING", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Server.Environment != "production" {
		t.Errorf("Environment = %q, want production", cfg.Server.Environment)
	}
	if cfg.Store.Type != "sqlite" {
		t.Errorf("Store.Type = %q, want sqlite", cfg.Store.Type)
	}
	if cfg.Store.SQLitePath != "/tmp/promolens.db" {
		t.Errorf("SQLitePath = %q, want /tmp/promolens.db", cfg.Store.SQLitePath)
	}
	if cfg.RateLimit.PerIP != 25 {
		t.Errorf("RateLimit.PerIP = %v, want 25", cfg.RateLimit.PerIP)
	}
	if !cfg.Parser.EnableDebugLogging {
		t.Error("EnableDebugLogging = false, want true")
	}
}

func TestLoadRejectsUnknownStoreType(t *testing.T) {
	t.Setenv("PROMOLENS_STORE_TYPE", "redis")

	if _, err := Load(); err == nil {
		t.Fatal("Load succeeded, want store type error")
	} else if !strings.Contains(err.Error(), "store type") {
		t.Errorf("error = %v, want mention of store type", err)
	}
}

func TestLoadRequiresPostgresDSN(t *testing.T) {
	t.Setenv("PROMOLENS_STORE_TYPE", "postgres")

	if _, err := Load(); err == nil {
		t.Fatal("Load succeeded, want DSN error")
	}
}

func TestLoadRejectsNonPositiveRateLimit(t *testing.T) {
	t.Setenv("PROMOLENS_RATELIMIT_PER_IP", "0")

	if _, err := Load(); err == nil {
		t.Fatal("Load succeeded, want rate limit error")
	}
}
