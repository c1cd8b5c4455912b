package palette

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"
)

//go:embed assets/qrcraftly.json
var defaultAsset []byte

// ErrUnknownSet is returned when a requested scenario set is not in the asset.
var ErrUnknownSet = errors.New("unknown scenario set")

// ScenarioSet is a named, ordered group of scenarios.
type ScenarioSet struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Scenarios   []Scenario `json:"scenarios"`
}

// Asset is the shared palette plus the scenario sets checked against it.
type Asset struct {
	Version string        `json:"version"`
	Palette Palette       `json:"palette"`
	Sets    []ScenarioSet `json:"sets"`

	digest uint64
}

// DefaultAsset returns the asset compiled into the binary.
func DefaultAsset() (*Asset, error) {
	return ParseAsset(defaultAsset)
}

// LoadAsset reads an asset file from disk.
func LoadAsset(path string) (*Asset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	a, err := ParseAsset(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// ParseAsset decodes an asset and checks its structure. Color values and
// scenario references are not checked here; they fail per scenario.
func ParseAsset(data []byte) (*Asset, error) {
	var a Asset
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parse asset: %w", err)
	}
	if len(a.Palette) == 0 {
		return nil, errors.New("asset has an empty palette")
	}
	seen := make(map[string]bool, len(a.Sets))
	for _, set := range a.Sets {
		if set.Name == "" {
			return nil, errors.New("asset has a scenario set without a name")
		}
		if seen[set.Name] {
			return nil, fmt.Errorf("duplicate scenario set %q", set.Name)
		}
		seen[set.Name] = true
	}
	a.digest = xxhash.Sum64(data)
	return &a, nil
}

// Digest fingerprints the asset bytes it was parsed from.
func (a *Asset) Digest() string {
	return fmt.Sprintf("%016x", a.digest)
}

// Revision combines the declared version with the content digest.
func (a *Asset) Revision() string {
	if a.Version == "" {
		return a.Digest()
	}
	return a.Version + "+" + a.Digest()[:8]
}

// SetNames lists scenario sets in asset order.
func (a *Asset) SetNames() []string {
	names := make([]string, len(a.Sets))
	for i, set := range a.Sets {
		names[i] = set.Name
	}
	return names
}

// Set returns the named scenario set.
func (a *Asset) Set(name string) (*ScenarioSet, error) {
	for i := range a.Sets {
		if a.Sets[i].Name == name {
			return &a.Sets[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSet, name)
}

// Scenarios concatenates the named sets in the order given.
// With no names, every set is included in asset order.
func (a *Asset) Scenarios(names ...string) ([]Scenario, error) {
	if len(names) == 0 {
		names = a.SetNames()
	}
	var out []Scenario
	for _, name := range names {
		set, err := a.Set(name)
		if err != nil {
			return nil, err
		}
		out = append(out, set.Scenarios...)
	}
	return out, nil
}
