// Package suggest proposes foreground colors that bring a failing scenario
// up to a target conformance level.
package suggest

import (
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/marcus/wcagcheck/internal/color"
	"github.com/marcus/wcagcheck/internal/contrast"
	"github.com/marcus/wcagcheck/internal/palette"
)

// Target is the conformance level a suggestion must reach.
type Target string

const (
	TargetAA  Target = "AA"
	TargetAAA Target = "AAA"
)

// Suggestion is a replacement foreground for a scenario.
type Suggestion struct {
	// Label is the palette label, empty for a color derived by Adjust.
	Label string
	Color color.Color
	Ratio float64
	Level contrast.Level
	// Distance is the CIE Lab distance from the original foreground.
	Distance float64
}

func meets(v contrast.Verdict, target Target) bool {
	if target == TargetAAA {
		return v.AAA
	}
	return v.AA
}

// FromPalette lists palette colors that, used as the foreground of o, reach
// target. Results are ordered by perceptual distance from the current
// foreground, nearest first, and capped at limit (0 means no cap).
// Outcomes that already meet target or that failed to evaluate yield nothing.
func FromPalette(p palette.Palette, o palette.Outcome, target Target, limit int) []Suggestion {
	if !o.OK() || meets(o.Verdict, target) {
		return nil
	}

	from := toColorful(o.Foreground)
	var out []Suggestion
	for _, label := range p.Labels() {
		if label == o.Scenario.Foreground {
			continue
		}
		c, err := p.Color(label)
		if err != nil {
			continue
		}
		v, err := contrast.Check(c, o.Background, o.Scenario.Size)
		if err != nil || !meets(v, target) {
			continue
		}
		out = append(out, Suggestion{
			Label:    label,
			Color:    c,
			Ratio:    v.Ratio,
			Level:    v.Level,
			Distance: from.DistanceLab(toColorful(c)),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].Label < out[j].Label
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Adjust blends fg toward white or black in Lab space until it reaches target
// against bg, picking whichever pole needs the smaller shift. It reports false
// when neither pole reaches target.
func Adjust(fg, bg color.Color, size contrast.Size, target Target) (Suggestion, bool) {
	check := func(c color.Color) (contrast.Verdict, bool) {
		v, err := contrast.Check(c, bg, size)
		return v, err == nil && meets(v, target)
	}
	if v, ok := check(fg); ok {
		return Suggestion{Color: fg, Ratio: v.Ratio, Level: v.Level}, true
	}

	from := toColorful(fg)
	var best Suggestion
	bestT := 2.0
	for _, pole := range []color.Color{color.White, color.Black} {
		if _, ok := check(pole); !ok {
			continue
		}
		to := toColorful(pole)
		lo, hi := 0.0, 1.0
		for i := 0; i < 16; i++ {
			mid := (lo + hi) / 2
			if _, ok := check(fromColorful(from.BlendLab(to, mid))); ok {
				hi = mid
			} else {
				lo = mid
			}
		}
		if hi < bestT {
			c := fromColorful(from.BlendLab(to, hi))
			v, ok := check(c)
			if !ok {
				// Rounding to 8 bits can land just short; the pole itself passes.
				c = pole
				v, _ = check(c)
			}
			bestT = hi
			best = Suggestion{
				Color:    c,
				Ratio:    v.Ratio,
				Level:    v.Level,
				Distance: from.DistanceLab(toColorful(c)),
			}
		}
	}
	return best, bestT <= 1
}

func toColorful(c color.Color) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) color.Color {
	r, g, b := c.Clamped().RGB255()
	return color.Color{R: r, G: g, B: b}
}
