package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"thermo/internal/config"
)

func TestLoadDefaultsExpandPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "thermo")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Paths.SocketPath != filepath.Join(wantData, "thermod.sock") {
		t.Fatalf("unexpected socket path: %q", cfg.Paths.SocketPath)
	}
	if cfg.Journal.Path != filepath.Join(wantData, "journal.db") {
		t.Fatalf("unexpected journal path: %q", cfg.Journal.Path)
	}
	if !cfg.Journal.Enabled {
		t.Fatal("expected journal enabled by default")
	}
	if cfg.Endpoint.Name != "convert0" {
		t.Fatalf("unexpected endpoint name: %q", cfg.Endpoint.Name)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadExplicitFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "thermo.toml")
	content := strings.Join([]string{
		"[paths]",
		`data_dir = "` + filepath.Join(dir, "data") + `"`,
		"[endpoint]",
		`name = "lab7"`,
		"[journal]",
		"enabled = false",
		"[logging]",
		`level = "debug"`,
		`format = "json"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected explicit file to resolve, got %q exists=%v", resolved, exists)
	}
	if cfg.Endpoint.Name != "lab7" {
		t.Fatalf("unexpected endpoint name: %q", cfg.Endpoint.Name)
	}
	if cfg.Journal.Enabled {
		t.Fatal("expected journal disabled")
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Fatalf("unexpected logging: %+v", cfg.Logging)
	}
	if cfg.Paths.SocketPath != filepath.Join(dir, "data", "thermod.sock") {
		t.Fatalf("socket should follow data dir: %q", cfg.Paths.SocketPath)
	}
}

func TestValidateRejectsBadEndpointName(t *testing.T) {
	cfg := config.Default()
	cfg.Endpoint.Name = "bad name"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for endpoint name with spaces")
	}
}

func TestValidateRejectsBadLogLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "thermo.toml")
	if err := os.WriteFile(path, []byte("[logging]\nlevel = \"chatty\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for unknown log level")
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	if _, _, exists, err := config.Load(path); err != nil || !exists {
		t.Fatalf("sample config should load, err=%v exists=%v", err, exists)
	}
}
