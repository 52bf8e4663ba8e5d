package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q, expected %q", cfg.Server.Port, "8080")
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Driver = %q, expected %q", cfg.Database.Driver, "sqlite")
	}
	if cfg.JWT.ExpireHour != 168 {
		t.Errorf("ExpireHour = %d, expected 168", cfg.JWT.ExpireHour)
	}
	if cfg.AI.Provider != "openai" {
		t.Errorf("Provider = %q, expected %q", cfg.AI.Provider, "openai")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Driver = %q, expected %q", cfg.Database.Driver, "sqlite")
	}
	// Debug mode falls back to the dev signing secret.
	if cfg.JWT.Secret == "" {
		t.Error("expected a fallback JWT secret outside release mode")
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  host: 127.0.0.1
  port: "9090"
  mode: test
database:
  driver: sqlite
  dsn: test.db
jwt:
  secret: file-secret
  expire_hour: 24
ai:
  provider: ollama
  model: llama3
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %q, expected %q", cfg.Server.Port, "9090")
	}
	if cfg.JWT.Secret != "file-secret" {
		t.Errorf("Secret = %q, expected %q", cfg.JWT.Secret, "file-secret")
	}
	if cfg.JWT.ExpireHour != 24 {
		t.Errorf("ExpireHour = %d, expected 24", cfg.JWT.ExpireHour)
	}
	if cfg.AI.Provider != "ollama" {
		t.Errorf("Provider = %q, expected %q", cfg.AI.Provider, "ollama")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "3001")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("JWT_EXPIRE_HOUR", "72")
	t.Setenv("AI_PROVIDER", "anthropic")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != "3001" {
		t.Errorf("Port = %q, expected %q", cfg.Server.Port, "3001")
	}
	if cfg.JWT.Secret != "env-secret" {
		t.Errorf("Secret = %q, expected %q", cfg.JWT.Secret, "env-secret")
	}
	if cfg.JWT.ExpireHour != 72 {
		t.Errorf("ExpireHour = %d, expected 72", cfg.JWT.ExpireHour)
	}
	if cfg.AI.Provider != "anthropic" {
		t.Errorf("Provider = %q, expected %q", cfg.AI.Provider, "anthropic")
	}
}

func TestLoad_DatabaseURLForcesPostgres(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/app")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("Driver = %q, expected %q", cfg.Database.Driver, "postgres")
	}
	if cfg.Database.DSN != "postgres://u:p@localhost:5432/app" {
		t.Errorf("DSN = %q, unexpected", cfg.Database.DSN)
	}
}

func TestValidate_ReleaseNeedsSecret(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Mode = "release"
	cfg.JWT.Secret = ""

	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty JWT secret in release mode")
	}
}

func TestValidate_EmptyDSN(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Database.DSN = ""

	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty database dsn")
	}
}
