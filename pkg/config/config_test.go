package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	var cfg Config
	if err := Load("", &cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 3000 {
		t.Fatalf("expected default port 3000, got %d", cfg.Server.Port)
	}
	if cfg.Admission.GeoBaseURL != "http://ip-api.com" {
		t.Fatalf("unexpected geo base url: %q", cfg.Admission.GeoBaseURL)
	}
	if cfg.Admission.Timeout != 5*time.Second {
		t.Fatalf("unexpected admission timeout: %v", cfg.Admission.Timeout)
	}
	if cfg.Admission.PolicyURL != "" {
		t.Fatalf("policy url must default to unset, got %q", cfg.Admission.PolicyURL)
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
port = 8080

[admission]
test_ip_override = "198.51.100.50"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("EXTERNAL_API_URL", "https://policy.example.com/check")
	t.Setenv("EXTERNAL_API_USERNAME", "svc")
	t.Setenv("EXTERNAL_API_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "events7")

	var cfg Config
	if err := Load(path, &cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("expected file port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Admission.TestIPOverride != "198.51.100.50" {
		t.Fatalf("unexpected override: %q", cfg.Admission.TestIPOverride)
	}
	if cfg.Admission.PolicyURL != "https://policy.example.com/check" {
		t.Fatalf("expected env policy url, got %q", cfg.Admission.PolicyURL)
	}
	if cfg.Admission.PolicyUsername != "svc" || cfg.Admission.PolicyPassword != "secret" {
		t.Fatalf("expected env credentials, got %q/%q", cfg.Admission.PolicyUsername, cfg.Admission.PolicyPassword)
	}
	if cfg.Database.Name != "events7" {
		t.Fatalf("expected env database name, got %q", cfg.Database.Name)
	}
}
