package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	// в каталоге пакета config.yaml нет
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 5000 {
		t.Fatalf("port = %d, want 5000", cfg.Port)
	}
	if cfg.MaxUploadBytes != 10<<20 {
		t.Fatalf("max upload = %d, want 10 MiB", cfg.MaxUploadBytes)
	}
	if cfg.ListenAddr() != ":5000" {
		t.Fatalf("listen addr = %q", cfg.ListenAddr())
	}
	if cfg.Matting.Backend != BackendColorKey {
		t.Fatalf("backend = %q", cfg.Matting.Backend)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	body := []byte(`
port: 8080
max_upload_bytes: 2048
matting:
  backend: rembg
  rembg_url: http://rembg:7000
  rembg_timeout: 5s
log:
  level: debug
  format: text
`)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 9090 {
		t.Fatalf("PORT override not applied: %d", cfg.Port)
	}
	if cfg.MaxUploadBytes != 2048 {
		t.Fatalf("max upload = %d", cfg.MaxUploadBytes)
	}
	if cfg.Matting.RembgTimeout != 5*time.Second {
		t.Fatalf("timeout = %v", cfg.Matting.RembgTimeout)
	}
	if cfg.Matting.ColorTolerance != defaultColorTolerance {
		t.Fatalf("tolerance default lost: %d", cfg.Matting.ColorTolerance)
	}
	if cfg.Log.Format != "text" {
		t.Fatalf("log format = %q", cfg.Log.Format)
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "bad port", mutate: func(c *Config) { c.Port = 70000 }, wantErr: true},
		{name: "zero body limit", mutate: func(c *Config) { c.MaxUploadBytes = 0 }, wantErr: true},
		{name: "unknown backend", mutate: func(c *Config) { c.Matting.Backend = "magic" }, wantErr: true},
		{name: "rembg without url", mutate: func(c *Config) { c.Matting.Backend = BackendRembg }, wantErr: true},
		{name: "rembg bad url", mutate: func(c *Config) {
			c.Matting.Backend = BackendRembg
			c.Matting.RembgURL = "not a url"
		}, wantErr: true},
		{name: "rembg ok", mutate: func(c *Config) {
			c.Matting.Backend = BackendRembg
			c.Matting.RembgURL = "http://localhost:7000"
		}},
		{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "loud" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
