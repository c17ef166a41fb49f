package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: "https://api.store.example"
  prefix: "/api/v1"
  timeout: "20s"
client:
  sign_in_path: "/signin"
  public_paths: ["/", "/shop"]
  public_prefixes: ["/products/"]
  allowed_roles: ["customer"]
`)
	t.Setenv("NETWORKSTORE_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BaseURL != "https://api.store.example" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Timeout != 20*time.Second {
		t.Errorf("Timeout = %v, want 20s", cfg.Timeout)
	}
	if len(cfg.PublicPaths) != 2 {
		t.Errorf("PublicPaths = %v", cfg.PublicPaths)
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: "https://api.store.example"
  timeout: "15s"
`)
	t.Setenv("NETWORKSTORE_CONFIG", path)
	t.Setenv("NETWORKSTORE_API_URL", "http://localhost:3000")
	t.Setenv("NETWORKSTORE_API_TIMEOUT", "5s")
	t.Setenv("NETWORKSTORE_ALLOWED_ROLES", "customer, vip")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BaseURL != "http://localhost:3000" {
		t.Errorf("BaseURL = %q, want env override", cfg.BaseURL)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}
	if len(cfg.AllowedRoles) != 2 || cfg.AllowedRoles[1] != "vip" {
		t.Errorf("AllowedRoles = %v, want [customer vip]", cfg.AllowedRoles)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("NETWORKSTORE_CONFIG", filepath.Join(t.TempDir(), "missing.yml"))
	if _, err := Load(); err == nil {
		t.Fatal("Load() error = nil, want missing-file failure")
	}
}

func TestDefaultFillsEverything(t *testing.T) {
	cfg := Default("http://localhost:3000")

	if cfg.APIPrefix != "/api/v1" {
		t.Errorf("APIPrefix = %q", cfg.APIPrefix)
	}
	if cfg.SignInPath != "/signin" {
		t.Errorf("SignInPath = %q", cfg.SignInPath)
	}
	if cfg.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if len(cfg.AllowedRoles) != 1 || cfg.AllowedRoles[0] != "customer" {
		t.Errorf("AllowedRoles = %v, want [customer]", cfg.AllowedRoles)
	}
	if len(cfg.PublicPrefixes) != 1 || cfg.PublicPrefixes[0] != "/products/" {
		t.Errorf("PublicPrefixes = %v", cfg.PublicPrefixes)
	}
}
