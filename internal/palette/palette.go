// Package palette resolves labeled colors and evaluates contrast scenarios
// against a caller-supplied palette.
package palette

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/marcus/wcagcheck/internal/color"
	"github.com/marcus/wcagcheck/internal/contrast"
)

// ErrUnknownPaletteLabel is returned when a scenario names a color the palette lacks.
var ErrUnknownPaletteLabel = errors.New("unknown palette label")

// Palette maps a unique label to a hex color string.
type Palette map[string]string

// Color looks up and parses the color stored under label.
func (p Palette) Color(label string) (color.Color, error) {
	hex, ok := p[label]
	if !ok {
		return color.Color{}, fmt.Errorf("%w: %q", ErrUnknownPaletteLabel, label)
	}
	c, err := color.ParseHex(hex)
	if err != nil {
		return color.Color{}, fmt.Errorf("palette entry %q: %w", label, err)
	}
	return c, nil
}

// Labels returns palette labels in sorted order.
func (p Palette) Labels() []string {
	labels := make([]string, 0, len(p))
	for label := range p {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Overlay describes a background drawn as Color at Opacity over Base.
type Overlay struct {
	Color   string  `json:"overlay"`
	Opacity float64 `json:"opacity"`
	Base    string  `json:"base"`
}

// Background is either a palette label or an overlay composite.
// In JSON it is a bare string or an object with overlay/opacity/base.
type Background struct {
	Label   string
	Overlay *Overlay
}

// Solid returns a background that refers to a single palette color.
func Solid(label string) Background {
	return Background{Label: label}
}

// Layered returns a background composited from overlay over base.
func Layered(overlay string, opacity float64, base string) Background {
	return Background{Overlay: &Overlay{Color: overlay, Opacity: opacity, Base: base}}
}

// String renders the background spec, e.g. "slate-50" or "teal-900@0.30/slate-800".
func (b Background) String() string {
	if b.Overlay == nil {
		return b.Label
	}
	return fmt.Sprintf("%s@%.2f/%s", b.Overlay.Color, b.Overlay.Opacity, b.Overlay.Base)
}

// MarshalJSON implements json.Marshaler.
func (b Background) MarshalJSON() ([]byte, error) {
	if b.Overlay != nil {
		return json.Marshal(b.Overlay)
	}
	return json.Marshal(b.Label)
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Background) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		*b = Background{}
		return json.Unmarshal(data, &b.Label)
	}
	var raw struct {
		Color   string   `json:"overlay"`
		Opacity *float64 `json:"opacity"`
		Base    string   `json:"base"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	if raw.Color == "" || raw.Base == "" {
		return errors.New("background overlay needs both overlay and base labels")
	}
	if raw.Opacity == nil {
		return fmt.Errorf("background overlay %q: missing opacity", raw.Color)
	}
	*b = Background{Overlay: &Overlay{Color: raw.Color, Opacity: *raw.Opacity, Base: raw.Base}}
	return nil
}

// Resolve returns the effective background color, compositing overlays.
func (p Palette) Resolve(b Background) (color.Color, error) {
	if b.Overlay == nil {
		return p.Color(b.Label)
	}
	over, err := p.Color(b.Overlay.Color)
	if err != nil {
		return color.Color{}, fmt.Errorf("overlay: %w", err)
	}
	base, err := p.Color(b.Overlay.Base)
	if err != nil {
		return color.Color{}, fmt.Errorf("base: %w", err)
	}
	return color.Composite(over, base, b.Overlay.Opacity)
}

// Scenario is one foreground/background comparison.
type Scenario struct {
	Label      string        `json:"label"`
	Mode       string        `json:"mode,omitempty"`
	Element    string        `json:"element,omitempty"`
	Background Background    `json:"bg"`
	Foreground string        `json:"fg"`
	Size       contrast.Size `json:"size"`
}

// Spec describes the compared colors, e.g. "white vs slate-900".
func (s Scenario) Spec() string {
	return s.Background.String() + " vs " + s.Foreground
}
