package config

import (
	"testing"
	"time"
)

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "a-test-secret-value")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("SLOT_CACHE_TTL_SECONDS", "15")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("REDIS_ADDR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Addr() != ":9090" {
		t.Errorf("Addr = %q, want :9090", cfg.Addr())
	}
	if cfg.DBMaxOpenConns != 20 {
		t.Errorf("DBMaxOpenConns = %d, want 20", cfg.DBMaxOpenConns)
	}
	if cfg.DBMaxIdleConns != 5 {
		t.Errorf("DBMaxIdleConns = %d, want default 5", cfg.DBMaxIdleConns)
	}
	if cfg.SlotCacheTTL != 15*time.Second {
		t.Errorf("SlotCacheTTL = %v, want 15s", cfg.SlotCacheTTL)
	}
	if len(cfg.CORSAllowOrigins) != 2 || cfg.CORSAllowOrigins[1] != "http://b.test" {
		t.Errorf("CORSAllowOrigins = %v", cfg.CORSAllowOrigins)
	}
	if cfg.CacheEnabled() {
		t.Errorf("cache should be disabled without REDIS_ADDR")
	}
}

func TestLoad_RejectsMissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for empty JWT_SECRET")
	}
}

func TestValidate_Port(t *testing.T) {
	tests := []struct {
		port    string
		wantErr bool
	}{
		{"8080", false},
		{"0", true},
		{"70000", true},
		{"abc", true},
	}

	for _, tt := range tests {
		cfg := &Config{DBUrl: "postgres://x", JWTSecret: "secret", ServerPort: tt.port}
		err := cfg.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("port %q: err = %v, wantErr %v", tt.port, err, tt.wantErr)
		}
	}
}
