// Package state persists browser preferences between runs.
package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// State holds persistent user preferences.
type State struct {
	Browse BrowseState `json:"browse"`
}

// BrowseState is what the results browser restores on start.
type BrowseState struct {
	FailingOnly bool     `json:"failingOnly,omitempty"`
	Sets        []string `json:"sets,omitempty"` // scenario sets last browsed
}

var (
	current *State
	mu      sync.RWMutex
	path    string
)

// Init loads state from the default location.
func Init() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	return InitWithDir(filepath.Join(home, ".config", "wcagcheck"))
}

// InitWithDir loads state from a specified directory.
// This is primarily for testing to avoid reading real user state.
func InitWithDir(dir string) error {
	mu.Lock()
	path = filepath.Join(dir, "state.json")
	mu.Unlock()
	return Load()
}

// Load reads state from disk.
func Load() error {
	mu.Lock()
	defer mu.Unlock()

	current = &State{}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil // no state file yet, use defaults
	}
	if err != nil {
		return err
	}

	return json.Unmarshal(data, current)
}

// Save writes state to disk.
func Save() error {
	mu.RLock()
	defer mu.RUnlock()

	if current == nil || path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetBrowseState returns the saved browser state.
func GetBrowseState() BrowseState {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return BrowseState{}
	}
	return current.Browse
}

// SetBrowseState saves the browser state.
func SetBrowseState(s BrowseState) error {
	mu.Lock()
	if current == nil {
		current = &State{}
	}
	current.Browse = s
	mu.Unlock()
	return Save()
}
