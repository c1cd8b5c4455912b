// Package contrast computes WCAG 2.x relative luminance and contrast ratios
// and classifies ratios against the AA and AAA text thresholds.
package contrast

import (
	"math"

	"github.com/marcus/wcagcheck/internal/color"
)

// Ratio returns the WCAG contrast ratio between two colors (1 to 21).
// Argument order does not matter.
func Ratio(a, b color.Color) float64 {
	l1 := Luminance(a)
	l2 := Luminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// MinRatio returns the lowest ratio of fg against any of bgs.
// With no backgrounds it measures fg against black.
func MinRatio(fg color.Color, bgs []color.Color) float64 {
	if len(bgs) == 0 {
		return Ratio(fg, color.Black)
	}
	minRatio := math.MaxFloat64
	for _, bg := range bgs {
		if ratio := Ratio(fg, bg); ratio < minRatio {
			minRatio = ratio
		}
	}
	return minRatio
}

// Luminance returns the relative luminance (0-1) of c.
func Luminance(c color.Color) float64 {
	r := linearize(float64(c.R) / 255.0)
	g := linearize(float64(c.G) / 255.0)
	b := linearize(float64(c.B) / 255.0)
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// linearize uses the 0.03928 breakpoint from the WCAG 2.0 text, not the
// 0.04045 of IEC 61966-2-1. Reported ratios depend on it.
func linearize(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}
