package config

import (
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvStorageBackend, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if !cfg.App.IsDev() {
		t.Fatalf("expected dev env by default, got %q", cfg.App.Env)
	}
	if cfg.Storage.Backend != "file" {
		t.Fatalf("expected file backend, got %q", cfg.Storage.Backend)
	}
	if cfg.Storage.CatalogFile != "defaultproducts.json" {
		t.Fatalf("unexpected catalog file %q", cfg.Storage.CatalogFile)
	}
	if cfg.Checkout.CurrencySymbol != "RM" {
		t.Fatalf("unexpected currency symbol %q", cfg.Checkout.CurrencySymbol)
	}
	if cfg.Feedback.MaxLength != 200 {
		t.Fatalf("unexpected feedback max length %d", cfg.Feedback.MaxLength)
	}
	if cfg.Password.Hasher != "sha256" {
		t.Fatalf("unexpected hasher %q", cfg.Password.Hasher)
	}
}

func TestLoad_SQLRequiresDSN(t *testing.T) {
	t.Setenv(EnvStorageBackend, "SQL")
	t.Setenv(EnvDBDSN, "")

	if _, err := Load(); err == nil {
		t.Fatal("expected sql backend without dsn to fail")
	}

	t.Setenv(EnvDBDSN, "file:backoffice.db")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Storage.Backend != "sql" {
		t.Fatalf("expected normalized backend sql, got %q", cfg.Storage.Backend)
	}
}

func TestLoad_RedisRequiresAddress(t *testing.T) {
	t.Setenv(EnvStorageBackend, "redis")
	t.Setenv(EnvRedisURL, "")
	t.Setenv(EnvRedisAddr, "")

	if _, err := Load(); err == nil {
		t.Fatal("expected redis backend without address to fail")
	}

	t.Setenv(EnvRedisAddr, "localhost:6379")
	if _, err := Load(); err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
}

func TestLoad_RejectsUnknownValues(t *testing.T) {
	t.Setenv(EnvStorageBackend, "s3")
	if _, err := Load(); err == nil {
		t.Fatal("expected unknown backend to fail")
	}

	t.Setenv(EnvStorageBackend, "file")
	t.Setenv(EnvPasswordHasher, "md5")
	if _, err := Load(); err == nil {
		t.Fatal("expected unknown hasher to fail")
	}

	t.Setenv(EnvPasswordHasher, "sha256")
	t.Setenv(EnvFeedbackMaxLen, "0")
	if _, err := Load(); err == nil {
		t.Fatal("expected zero feedback length to fail")
	}
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() || devConfig.IsProd() {
		t.Fatalf("unexpected helpers for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "prod"}
	if !prodConfig.IsProd() || prodConfig.IsDev() {
		t.Fatalf("unexpected helpers for %q", prodConfig.Env)
	}
}

func TestStoragePath(t *testing.T) {
	s := StorageConfig{DataDir: "data"}
	if got := s.Path("catalog.json"); got != filepath.Join("data", "catalog.json") {
		t.Fatalf("unexpected path %q", got)
	}
	abs := filepath.Join(string(filepath.Separator), "tmp", "x.json")
	if got := s.Path(abs); got != abs {
		t.Fatalf("expected absolute path untouched, got %q", got)
	}
}
