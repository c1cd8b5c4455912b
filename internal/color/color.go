// Package color parses hex colors and composites translucent layers.
package color

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrInvalidColorFormat is returned for strings that are not six hex digits.
	ErrInvalidColorFormat = errors.New("invalid color format")
	// ErrInvalidOpacity is returned for opacities outside [0, 1].
	ErrInvalidOpacity = errors.New("invalid opacity")
)

// Color is an opaque sRGB color with 8-bit channels.
type Color struct {
	R, G, B uint8
}

// Black and White are the extremes of the contrast scale.
var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
)

// ParseHex converts "#rrggbb" or "rrggbb" (any case) to a Color.
func ParseHex(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, s)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// MustParseHex is like ParseHex but panics on malformed input.
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the color in lowercase #rrggbb form.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) String() string {
	return c.Hex()
}

// Composite draws overlay at the given opacity over base.
// Channels are truncated, not rounded: floor(overlay*alpha + base*(1-alpha)).
func Composite(overlay, base Color, alpha float64) (Color, error) {
	if math.IsNaN(alpha) || alpha < 0 || alpha > 1 {
		return Color{}, fmt.Errorf("%w: %v", ErrInvalidOpacity, alpha)
	}
	return Color{
		R: blend(overlay.R, base.R, alpha),
		G: blend(overlay.G, base.G, alpha),
		B: blend(overlay.B, base.B, alpha),
	}, nil
}

func blend(over, under uint8, alpha float64) uint8 {
	// The explicit conversions round each product separately and keep the
	// compiler from fusing them into one FMA, which would shift edge values.
	v := float64(float64(over)*alpha) + float64(float64(under)*(1-alpha))
	return uint8(math.Floor(v))
}
