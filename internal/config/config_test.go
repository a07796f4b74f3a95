package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/utkarsh5026/pinbench/workload"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.BufferSize != workload.DefaultBufferSize {
		t.Errorf("expected buffer size %d, got %d", workload.DefaultBufferSize, cfg.BufferSize)
	}
	if cfg.ChurnIterations != 10_000_000 {
		t.Errorf("expected 10,000,000 churn iterations, got %d", cfg.ChurnIterations)
	}
	if cfg.Output != OutputTable {
		t.Errorf("expected table output, got %q", cfg.Output)
	}
	if cfg.Interval != 900*time.Millisecond {
		t.Errorf("expected 900ms interval, got %v", cfg.Interval)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("PINBENCH_BUFFER_SIZE", "4096")
	t.Setenv("PINBENCH_CHURN_ITERATIONS", "10")
	t.Setenv("PINBENCH_OUTPUT", "json")
	t.Setenv("PINBENCH_QUIET", "true")
	t.Setenv("PINBENCH_INTERVAL", "250ms")
	t.Setenv("PINBENCH_ROUNDS", "0")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.BufferSize != 4096 {
		t.Errorf("expected buffer size 4096, got %d", cfg.BufferSize)
	}
	if cfg.ChurnIterations != 10 {
		t.Errorf("expected 10 churn iterations, got %d", cfg.ChurnIterations)
	}
	if cfg.Output != OutputJSON {
		t.Errorf("expected json output, got %q", cfg.Output)
	}
	if !cfg.Quiet {
		t.Error("expected quiet")
	}
	if cfg.Interval != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %v", cfg.Interval)
	}
	if cfg.Rounds != 0 {
		t.Errorf("expected unbounded rounds, got %d", cfg.Rounds)
	}
}

func TestLoad_BadEnvironment(t *testing.T) {
	t.Setenv("PINBENCH_BUFFER_SIZE", "lots")
	t.Setenv("PINBENCH_INTERVAL", "soon")

	_, err := Load("")
	if err == nil {
		t.Fatal("expected error for malformed environment")
	}
	if !strings.Contains(err.Error(), "PINBENCH_BUFFER_SIZE") || !strings.Contains(err.Error(), "PINBENCH_INTERVAL") {
		t.Errorf("expected both variables to be named, got %v", err)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("PINBENCH_ROUNDS=42\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	// godotenv does not override variables that are already set, so make sure
	// the test starts from a clean slate and cleans up after itself.
	t.Setenv("PINBENCH_ROUNDS", "")
	if err := os.Unsetenv("PINBENCH_ROUNDS"); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Rounds != 42 {
		t.Errorf("expected rounds from env file, got %d", cfg.Rounds)
	}
}

func TestLoad_MissingEnvFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("missing env file should be ignored, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero buffer", func(c *Config) { c.BufferSize = 0 }, "buffer size"},
		{"negative churn", func(c *Config) { c.ChurnIterations = -1 }, "churn"},
		{"bad output", func(c *Config) { c.Output = "xml" }, "output format"},
		{"negative threads", func(c *Config) { c.Threads = -2 }, "threads"},
		{"negative interval", func(c *Config) { c.Interval = -time.Second }, "interval"},
		{"negative rounds", func(c *Config) { c.Rounds = -1 }, "rounds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("expected error to mention %q, got %v", tt.field, err)
			}
		})
	}
}
