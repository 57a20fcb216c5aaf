package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "regions.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if cfg.Format != "text" {
		t.Errorf("Format: got %s, want text", cfg.Format)
	}
	if cfg.Overlay.Alpha != 205 {
		t.Errorf("Overlay.Alpha: got %d, want 205", cfg.Overlay.Alpha)
	}
	if cfg.MaxSteps != 0 {
		t.Errorf("MaxSteps: got %d, want 0", cfg.MaxSteps)
	}
	if cfg.Debug() {
		t.Error("default config should not enable debug logging")
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
max_steps: 5000
format: JSON
log_level: debug
overlay:
  alpha: 128
  tint: "#ff0000"
batch_workers: 2
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.MaxSteps != 5000 {
		t.Errorf("MaxSteps: got %d, want 5000", cfg.MaxSteps)
	}
	if cfg.Format != "json" {
		t.Errorf("Format: got %s, want json", cfg.Format)
	}
	if !cfg.Debug() {
		t.Error("Debug should be enabled")
	}
	if cfg.Overlay.Alpha != 128 || cfg.Overlay.Tint != "#ff0000" {
		t.Errorf("Overlay: got %+v", cfg.Overlay)
	}
	if cfg.BatchWorkers != 2 {
		t.Errorf("BatchWorkers: got %d, want 2", cfg.BatchWorkers)
	}
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "format: yaml\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Format != "yaml" {
		t.Errorf("Format: got %s, want yaml", cfg.Format)
	}
	if cfg.Overlay.Alpha != 205 {
		t.Errorf("Overlay.Alpha should keep default, got %d", cfg.Overlay.Alpha)
	}
	if cfg.BatchWorkers != 4 {
		t.Errorf("BatchWorkers should keep default, got %d", cfg.BatchWorkers)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed yaml", "format: [text"},
		{"unknown format", "format: xml"},
		{"negative max steps", "max_steps: -1"},
		{"unknown log level", "log_level: trace"},
		{"zero alpha", "overlay:\n  alpha: 0"},
		{"zero workers", "batch_workers: 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.body)); err == nil {
				t.Error("Load should fail")
			}
		})
	}
}

func TestLoad_NonExistent(t *testing.T) {
	if _, err := Load("/nonexistent/regions.yaml"); err == nil {
		t.Error("Load should fail for non-existent file")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvLogLevel, "DEBUG")

	cfg := Default()
	cfg.ApplyEnv()

	if !cfg.Debug() {
		t.Errorf("LogLevel: got %s, want debug", cfg.LogLevel)
	}
}
