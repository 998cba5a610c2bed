package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ServerURL != "http://localhost:8080" {
		t.Errorf("unexpected server url %q", cfg.ServerURL)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("unexpected timeout %v", cfg.RequestTimeout)
	}
	if cfg.DataDir != dir {
		t.Errorf("unexpected data dir %q", cfg.DataDir)
	}
	if cfg.DevMode {
		t.Error("expected dev_mode=false by default")
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := "server_url: https://assistant.example.edu\nrequest_timeout: 5s\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ServerURL != "https://assistant.example.edu" {
		t.Errorf("expected file value, got %q", cfg.ServerURL)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("expected 5s, got %v", cfg.RequestTimeout)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	content := "server_url: https://file.example.edu\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	t.Setenv("SHULE_SERVER_URL", "https://env.example.edu")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ServerURL != "https://env.example.edu" {
		t.Errorf("expected env to win, got %q", cfg.ServerURL)
	}
}

func TestLoad_DataDirFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SHULE_DATA_DIR", dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DataDir != dir {
		t.Errorf("expected %q, got %q", dir, cfg.DataDir)
	}
}
