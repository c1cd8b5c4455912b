package config

import "time"

// Config is the root configuration structure.
type Config struct {
	Asset    string         `json:"asset"` // palette asset file ("" = built-in)
	Sets     []string       `json:"sets"`  // scenario sets checked by default (empty = all)
	Output   OutputConfig   `json:"output"`
	Evaluate EvaluateConfig `json:"evaluate"`
	History  HistoryConfig  `json:"history"`
	Watch    WatchConfig    `json:"watch"`
}

// OutputConfig configures report rendering.
type OutputConfig struct {
	// Format is "text", "styled", "markdown" or "json". Empty picks styled on a
	// terminal and text otherwise.
	Format string `json:"format"`
	Width  int    `json:"width"`
}

// EvaluateConfig configures scenario evaluation.
type EvaluateConfig struct {
	Workers int  `json:"workers"` // 0 = GOMAXPROCS, 1 = sequential
	Strict  bool `json:"strict"`  // abort the whole run on the first failed scenario
}

// HistoryConfig configures the run history database.
type HistoryConfig struct {
	Enabled bool   `json:"enabled"`
	DBPath  string `json:"dbPath"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	Debounce time.Duration `json:"debounce"`
}

const (
	defaultWidth    = 100
	defaultDebounce = 200 * time.Millisecond
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Width: defaultWidth,
		},
		Evaluate: EvaluateConfig{
			Workers: 1,
		},
		History: HistoryConfig{
			Enabled: false,
			DBPath:  "~/.config/wcagcheck/history.db",
		},
		Watch: WatchConfig{
			Debounce: defaultDebounce,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Evaluate.Workers < 0 {
		c.Evaluate.Workers = 0
	}
	if c.Output.Width <= 0 {
		c.Output.Width = defaultWidth
	}
	if c.Watch.Debounce <= 0 {
		c.Watch.Debounce = defaultDebounce
	}
	return nil
}
