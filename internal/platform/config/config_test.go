package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		StorageBackend:     BackendCSV,
		DataDir:            "data",
		TokenTTL:           time.Hour,
		MaxBodyBytes:       1048576,
		RateLimitPerMinute: 60,
		LogFormat:          "json",
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("TOKEN_TTL", "")
	cfg := Load()
	if cfg.StorageBackend != BackendCSV || cfg.DataDir != "GEAR.HR" || cfg.TokenTTL != 12*time.Hour {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "Postgres")
	t.Setenv("BACKUP_INTERVAL", "30m")
	t.Setenv("SEED_SAMPLE_DATA", "false")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "not-a-number")
	cfg := Load()
	if cfg.StorageBackend != BackendPostgres || cfg.BackupInterval != 30*time.Minute || cfg.SeedSampleData {
		t.Fatalf("unexpected overrides %+v", cfg)
	}
	if cfg.RateLimitPerMinute != 120 {
		t.Fatalf("expected invalid int to fall back, got %d", cfg.RateLimitPerMinute)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("DATA_DIR=from-dotenv\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("DATA_DIR", "")
	os.Unsetenv("DATA_DIR")
	LoadDotEnv(path)
	if got := Load().DataDir; got != "from-dotenv" {
		t.Fatalf("expected from-dotenv, got %s", got)
	}
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	cases := map[string]func(*Config){
		"unknown backend":     func(c *Config) { c.StorageBackend = "sqlite" },
		"postgres without db": func(c *Config) { c.StorageBackend = BackendPostgres },
		"production no jwt":   func(c *Config) { c.Environment = "production" },
		"production seeding": func(c *Config) {
			c.Environment = "production"
			c.JWTSecret = "s"
			c.DataEncryptionKey = "k"
			c.SeedSampleData = true
		},
		"small body":    func(c *Config) { c.MaxBodyBytes = 10 },
		"bad rate":      func(c *Config) { c.RateLimitPerMinute = 0 },
		"bad format":    func(c *Config) { c.LogFormat = "xml" },
		"negative ttl":  func(c *Config) { c.TokenTTL = -time.Second },
		"negative tick": func(c *Config) { c.BackupInterval = -time.Second },
	}
	for name, mutate := range cases {
		cfg := validConfig()
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}
