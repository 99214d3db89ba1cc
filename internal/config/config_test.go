package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfigPrecedence(t *testing.T) {
	// Create a temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yml")
	configContent := []byte(`
debug: false
harness:
  concurrency: 2
  parse_timeout: "10s"
  keep_output: true
  template_root: "templates/fastapi-ai"
  manifest: "configs/required_paths.yaml"
  python_bin: "python3"
  output: "json"
server:
  host: "127.0.0.1"
  port: 9090
  timeout: "1m"
`)
	if err := os.WriteFile(configPath, configContent, 0644); err != nil {
		t.Fatal(err)
	}

	// Set environment variables (should override config file)
	os.Setenv("KSMAI_SERVER_PORT", "9091")
	os.Setenv("KSMAI_HARNESS_CONCURRENCY", "8")
	defer os.Unsetenv("KSMAI_SERVER_PORT")
	defer os.Unsetenv("KSMAI_HARNESS_CONCURRENCY")

	// Load the configuration
	cfg, err := Load(configPath)
	if err != nil {
		t.Fatal(err)
	}

	// Test config file values
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("expected host 127.0.0.1, got %s", cfg.Server.Host)
	}
	if !cfg.Harness.KeepOutput {
		t.Error("expected keep_output true from config file")
	}
	if cfg.Harness.Output != "json" {
		t.Errorf("expected output json, got %s", cfg.Harness.Output)
	}

	// Test environment variable override
	if cfg.Server.Port != 9091 {
		t.Errorf("expected port 9091, got %d", cfg.Server.Port)
	}
	if cfg.Harness.Concurrency != 8 {
		t.Errorf("expected concurrency 8, got %d", cfg.Harness.Concurrency)
	}

	// Test duration parsing
	if cfg.Harness.ParseTimeout != 10*time.Second {
		t.Errorf("expected parse timeout 10s, got %v", cfg.Harness.ParseTimeout)
	}
	if cfg.Server.Timeout != time.Minute {
		t.Errorf("expected timeout 1m, got %v", cfg.Server.Timeout)
	}
}

func TestConfigDefaults(t *testing.T) {
	// Run from a directory without a config file so defaults apply
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	defer func() {
		if err := os.Chdir(oldWd); err != nil {
			t.Fatal(err)
		}
	}()

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Harness.Concurrency != 4 {
		t.Errorf("expected default concurrency 4, got %d", cfg.Harness.Concurrency)
	}
	if cfg.Harness.ParseTimeout != 30*time.Second {
		t.Errorf("expected default parse timeout 30s, got %v", cfg.Harness.ParseTimeout)
	}
	if cfg.Harness.PythonBin != "python3" {
		t.Errorf("expected default python_bin python3, got %s", cfg.Harness.PythonBin)
	}
	if cfg.Harness.Output != "table" {
		t.Errorf("expected default output table, got %s", cfg.Harness.Output)
	}
}

func TestConfigMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err == nil {
		t.Error("expected error for missing config file")
	}
}
