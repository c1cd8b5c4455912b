package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marcus/wcagcheck/internal/color"
	"github.com/marcus/wcagcheck/internal/contrast"
	"github.com/marcus/wcagcheck/internal/palette"
	"github.com/marcus/wcagcheck/internal/report"
)

func newPairCmd(a *app) *cobra.Command {
	var (
		size    string
		overlay string
		format  string
	)
	cmd := &cobra.Command{
		Use:   "pair FOREGROUND BACKGROUND",
		Short: "Check two literal colors",
		Long: `Check a foreground color against a background color given as hex.

With --overlay HEX@OPACITY the overlay is composited onto BACKGROUND first.`,
		Example: `  wcagcheck pair '#ffffff' '#0f172a'
  wcagcheck pair 2dd4bf 1e293b --overlay 134e4a@0.3 --size large`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sz, err := contrast.ParseSize(size)
			if err != nil {
				return err
			}
			s, p, err := pairScenario(args[0], args[1], overlay, sz)
			if err != nil {
				return err
			}

			outcomes, _ := palette.Evaluate(p, []palette.Scenario{s})
			ropts, err := a.reportOptions(format, "")
			if err != nil {
				return err
			}
			if err := report.Write(a.out, outcomes, ropts); err != nil {
				return err
			}
			if o := outcomes[0]; !o.OK() || !o.Verdict.AA {
				return errChecksFailed
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&size, "size", string(contrast.SizeNormal), "text size: normal or large")
	cmd.Flags().StringVar(&overlay, "overlay", "", "semi-transparent overlay on the background, as HEX@OPACITY")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: text, styled, markdown, json")
	return cmd
}

// pairScenario builds a one-off palette whose labels are the literal colors,
// so literal pairs go through the same evaluation as asset scenarios.
func pairScenario(fg, bg, overlay string, size contrast.Size) (palette.Scenario, palette.Palette, error) {
	p := palette.Palette{fg: fg, bg: bg}
	s := palette.Scenario{
		Label:      "pair",
		Background: palette.Solid(bg),
		Foreground: fg,
		Size:       size,
	}
	if overlay == "" {
		return s, p, nil
	}

	hex, opacity, err := parseOverlay(overlay)
	if err != nil {
		return palette.Scenario{}, nil, err
	}
	p[hex] = hex
	s.Background = palette.Layered(hex, opacity, bg)
	return s, p, nil
}

// parseOverlay splits "HEX@OPACITY".
func parseOverlay(v string) (string, float64, error) {
	hex, op, ok := strings.Cut(v, "@")
	if !ok {
		return "", 0, fmt.Errorf("overlay %q: want HEX@OPACITY", v)
	}
	if _, err := color.ParseHex(hex); err != nil {
		return "", 0, fmt.Errorf("overlay: %w", err)
	}
	opacity, err := strconv.ParseFloat(op, 64)
	if err != nil {
		return "", 0, fmt.Errorf("overlay %q: %w: %q", v, color.ErrInvalidOpacity, op)
	}
	return hex, opacity, nil
}
