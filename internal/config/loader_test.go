package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// clearEnv blanks every override variable for the duration of a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvConfig, EnvAsset, EnvFormat, EnvWorkers, EnvHistoryDB} {
		t.Setenv(k, "")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Asset != "" {
		t.Errorf("got asset %q, want built-in", cfg.Asset)
	}
	if cfg.Evaluate.Workers != 1 {
		t.Errorf("got workers %d, want 1", cfg.Evaluate.Workers)
	}
	if cfg.History.Enabled {
		t.Error("history should be disabled by default")
	}
	if cfg.Watch.Debounce != 200*time.Millisecond {
		t.Errorf("got debounce %v, want 200ms", cfg.Watch.Debounce)
	}
}

func TestLoadFrom_NonExistent(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadFrom("/nonexistent/path/config.json")
	if err != nil {
		t.Errorf("should not error on missing file: %v", err)
	}
	if cfg == nil {
		t.Error("should return default config")
	}
}

func TestLoadFrom_ValidJSON(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	content := []byte(`{
		"sets": ["proposed"],
		"output": {"format": "markdown"},
		"evaluate": {"workers": 4, "strict": true},
		"watch": {"debounce": "1s"}
	}`)

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if len(cfg.Sets) != 1 || cfg.Sets[0] != "proposed" {
		t.Errorf("got sets %v, want [proposed]", cfg.Sets)
	}
	if cfg.Output.Format != "markdown" {
		t.Errorf("got format %q, want markdown", cfg.Output.Format)
	}
	if cfg.Evaluate.Workers != 4 || !cfg.Evaluate.Strict {
		t.Errorf("got evaluate %+v", cfg.Evaluate)
	}
	if cfg.Watch.Debounce != time.Second {
		t.Errorf("got debounce %v, want 1s", cfg.Watch.Debounce)
	}
	// Default values should still be present
	if cfg.Output.Width != 100 {
		t.Errorf("got width %d, want default 100", cfg.Output.Width)
	}
}

func TestLoadFrom_InvalidJSON(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte(`{invalid`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFrom(path)
	if err == nil {
		t.Error("should error on invalid JSON")
	}
}

func TestLoadFrom_EnvConfigPath(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "alt.json")
	if err := os.WriteFile(path, []byte(`{"output": {"format": "json"}}`), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConfig, path)

	cfg, err := LoadFrom("")
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("got format %q, want json from %s", cfg.Output.Format, EnvConfig)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvAsset:     "/tmp/palette.json",
		EnvFormat:    "styled",
		EnvWorkers:   "8",
		EnvHistoryDB: "/tmp/history.db",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	ApplyEnv(cfg, lookup)

	if cfg.Asset != "/tmp/palette.json" || cfg.Output.Format != "styled" || cfg.Evaluate.Workers != 8 {
		t.Errorf("env not applied: %+v", cfg)
	}
	if !cfg.History.Enabled || cfg.History.DBPath != "/tmp/history.db" {
		t.Errorf("history env not applied: %+v", cfg.History)
	}

	env[EnvWorkers] = "many"
	cfg = Default()
	ApplyEnv(cfg, lookup)
	if cfg.Evaluate.Workers != 1 {
		t.Errorf("invalid worker count changed workers to %d", cfg.Evaluate.Workers)
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	if err := LoadEnvFile(filepath.Join(dir, "missing.env")); err != nil {
		t.Errorf("missing env file should not error: %v", err)
	}

	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("WCAGCHECK_TEST_VALUE=from-file\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("WCAGCHECK_TEST_VALUE", "")
	os.Unsetenv("WCAGCHECK_TEST_VALUE")
	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile: %v", err)
	}
	if got := os.Getenv("WCAGCHECK_TEST_VALUE"); got != "from-file" {
		t.Errorf("got %q, want from-file", got)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input  string
		expect string
	}{
		{"~/.config/wcagcheck/history.db", filepath.Join(home, ".config/wcagcheck/history.db")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tc := range tests {
		got := ExpandPath(tc.input)
		if got != tc.expect {
			t.Errorf("ExpandPath(%q) = %q, want %q", tc.input, got, tc.expect)
		}
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Evaluate.Workers = -3
	cfg.Output.Width = 0
	cfg.Watch.Debounce = -1

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}

	// Negative values should be corrected
	if cfg.Evaluate.Workers != 0 {
		t.Errorf("got workers %d, want 0 after validation", cfg.Evaluate.Workers)
	}
	if cfg.Output.Width != 100 {
		t.Errorf("got width %d, want 100 after validation", cfg.Output.Width)
	}
	if cfg.Watch.Debounce != 200*time.Millisecond {
		t.Errorf("got %v, want 200ms after validation", cfg.Watch.Debounce)
	}
}
