package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// saveConfig is the JSON-marshaling intermediary that uses string durations.
type saveConfig struct {
	Asset    string          `json:"asset,omitempty"`
	Sets     []string        `json:"sets,omitempty"`
	Output   OutputConfig    `json:"output"`
	Evaluate EvaluateConfig  `json:"evaluate"`
	History  HistoryConfig   `json:"history"`
	Watch    saveWatchConfig `json:"watch"`
}

type saveWatchConfig struct {
	Debounce string `json:"debounce,omitempty"`
}

// toSaveConfig converts Config to the JSON-serializable format.
func toSaveConfig(cfg *Config) saveConfig {
	return saveConfig{
		Asset:    cfg.Asset,
		Sets:     cfg.Sets,
		Output:   cfg.Output,
		Evaluate: cfg.Evaluate,
		History:  cfg.History,
		Watch: saveWatchConfig{
			Debounce: cfg.Watch.Debounce.String(),
		},
	}
}

// Save writes the config to ConfigPath. Keys in an existing file that the
// config does not manage are kept.
func Save(cfg *Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes the config to path.
func SaveTo(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	merged := make(map[string]json.RawMessage)
	if existing, err := os.ReadFile(path); err == nil {
		// An unreadable existing file is replaced rather than merged.
		_ = json.Unmarshal(existing, &merged)
	}

	data, err := json.Marshal(toSaveConfig(cfg))
	if err != nil {
		return err
	}
	var managed map[string]json.RawMessage
	if err := json.Unmarshal(data, &managed); err != nil {
		return err
	}
	for k, v := range managed {
		merged[k] = v
	}

	out, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(out, '\n'), 0644)
}
