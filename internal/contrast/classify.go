package contrast

import (
	"errors"
	"fmt"

	"github.com/marcus/wcagcheck/internal/color"
)

// ErrInvalidSizeCategory is returned for a size other than normal or large.
var ErrInvalidSizeCategory = errors.New("invalid size category")

// Size is the WCAG text size category.
type Size string

const (
	SizeNormal Size = "normal"
	// SizeLarge covers text of at least 18pt, or 14pt bold.
	SizeLarge Size = "large"
)

// ParseSize validates a size category name.
func ParseSize(s string) (Size, error) {
	switch Size(s) {
	case SizeNormal, SizeLarge:
		return Size(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSizeCategory, s)
	}
}

// Thresholds holds the minimum ratios for each conformance level.
type Thresholds struct {
	AA  float64
	AAA float64
}

// Thresholds returns the minimum ratios that apply to text of size s.
func (s Size) Thresholds() (Thresholds, error) {
	switch s {
	case SizeNormal:
		return Thresholds{AA: 4.5, AAA: 7.0}, nil
	case SizeLarge:
		return Thresholds{AA: 3.0, AAA: 4.5}, nil
	default:
		return Thresholds{}, fmt.Errorf("%w: %q", ErrInvalidSizeCategory, string(s))
	}
}

// Level is the highest conformance level a ratio reaches.
type Level string

const (
	LevelAAA  Level = "AAA"
	LevelAA   Level = "AA"
	LevelFail Level = "Fail"
)

// Verdict is the classification of one foreground/background pair.
type Verdict struct {
	Ratio float64 `json:"ratio"`
	AA    bool    `json:"aa"`
	AAA   bool    `json:"aaa"`
	Level Level   `json:"level"`
}

// Classify checks ratio against the thresholds for size. Thresholds are
// inclusive: a ratio equal to a minimum passes it.
func Classify(ratio float64, size Size) (Verdict, error) {
	th, err := size.Thresholds()
	if err != nil {
		return Verdict{}, err
	}
	v := Verdict{
		Ratio: ratio,
		AA:    ratio >= th.AA,
		AAA:   ratio >= th.AAA,
		Level: LevelFail,
	}
	switch {
	case v.AAA:
		v.Level = LevelAAA
	case v.AA:
		v.Level = LevelAA
	}
	return v, nil
}

// Check computes the ratio between fg and bg and classifies it.
func Check(fg, bg color.Color, size Size) (Verdict, error) {
	return Classify(Ratio(fg, bg), size)
}
