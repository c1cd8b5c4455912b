package config

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	configDir  = ".config/wcagcheck"
	configFile = "config.json"
)

// Environment variables that override the config file.
const (
	EnvConfig    = "WCAGCHECK_CONFIG"
	EnvAsset     = "WCAGCHECK_ASSET"
	EnvFormat    = "WCAGCHECK_FORMAT"
	EnvWorkers   = "WCAGCHECK_WORKERS"
	EnvHistoryDB = "WCAGCHECK_HISTORY_DB"
)

// testConfigPath overrides ConfigPath in tests.
var testConfigPath string

// rawConfig is the JSON-unmarshaling intermediary.
type rawConfig struct {
	Asset    string            `json:"asset"`
	Sets     []string          `json:"sets"`
	Output   rawOutputConfig   `json:"output"`
	Evaluate rawEvaluateConfig `json:"evaluate"`
	History  rawHistoryConfig  `json:"history"`
	Watch    rawWatchConfig    `json:"watch"`
}

type rawOutputConfig struct {
	Format string `json:"format"`
	Width  *int   `json:"width"`
}

type rawEvaluateConfig struct {
	Workers *int  `json:"workers"`
	Strict  *bool `json:"strict"`
}

type rawHistoryConfig struct {
	Enabled *bool  `json:"enabled"`
	DBPath  string `json:"dbPath"`
}

type rawWatchConfig struct {
	Debounce string `json:"debounce"`
}

// LoadEnvFile loads KEY=VALUE pairs from path (default ".env") into the
// process environment. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Load loads configuration from the default location.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from a specific path.
// If path is empty, uses $WCAGCHECK_CONFIG or ~/.config/wcagcheck/config.json.
// Environment overrides are applied last.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		path = ConfigPath()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			var raw rawConfig
			if err := json.Unmarshal(data, &raw); err != nil {
				return nil, err
			}
			mergeConfig(cfg, &raw)
		case !os.IsNotExist(err):
			return nil, err
		}
	}

	ApplyEnv(cfg, os.LookupEnv)

	cfg.Asset = ExpandPath(cfg.Asset)
	cfg.History.DBPath = ExpandPath(cfg.History.DBPath)
	if cfg.Asset != "" {
		if _, err := os.Stat(cfg.Asset); os.IsNotExist(err) {
			slog.Warn("palette asset not found", "path", cfg.Asset)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeConfig merges raw config values into the config.
func mergeConfig(cfg *Config, raw *rawConfig) {
	if raw.Asset != "" {
		cfg.Asset = raw.Asset
	}
	if len(raw.Sets) > 0 {
		cfg.Sets = append([]string(nil), raw.Sets...)
	}

	// Output
	if raw.Output.Format != "" {
		cfg.Output.Format = raw.Output.Format
	}
	if raw.Output.Width != nil {
		cfg.Output.Width = *raw.Output.Width
	}

	// Evaluate
	if raw.Evaluate.Workers != nil {
		cfg.Evaluate.Workers = *raw.Evaluate.Workers
	}
	if raw.Evaluate.Strict != nil {
		cfg.Evaluate.Strict = *raw.Evaluate.Strict
	}

	// History
	if raw.History.Enabled != nil {
		cfg.History.Enabled = *raw.History.Enabled
	}
	if raw.History.DBPath != "" {
		cfg.History.DBPath = raw.History.DBPath
	}

	// Watch
	if raw.Watch.Debounce != "" {
		if d, err := time.ParseDuration(raw.Watch.Debounce); err == nil {
			cfg.Watch.Debounce = d
		}
	}
}

// ApplyEnv overrides config values from environment variables.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvAsset); ok && v != "" {
		cfg.Asset = v
	}
	if v, ok := lookup(EnvFormat); ok && v != "" {
		cfg.Output.Format = v
	}
	if v, ok := lookup(EnvWorkers); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Evaluate.Workers = n
		} else {
			slog.Warn("ignoring invalid worker count", "env", EnvWorkers, "value", v)
		}
	}
	if v, ok := lookup(EnvHistoryDB); ok && v != "" {
		cfg.History.DBPath = v
		cfg.History.Enabled = true
	}
}

// ExpandPath expands ~ to home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	if testConfigPath != "" {
		return testConfigPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir, configFile)
}

// SetTestConfigPath points ConfigPath at path. For tests only.
func SetTestConfigPath(path string) {
	testConfigPath = path
}

// ResetTestConfigPath undoes SetTestConfigPath.
func ResetTestConfigPath() {
	testConfigPath = ""
}
