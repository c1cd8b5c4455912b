package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marcus/wcagcheck/internal/suggest"
)

func newSuggestCmd(a *app) *cobra.Command {
	var (
		sets   []string
		target string
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Propose foregrounds for scenarios below a target level",
		Long: `For every scenario below the target level, list palette colors that reach
it as foreground, nearest to the current foreground in CIE Lab first. When no
palette color qualifies, a lightened or darkened variant of the current
foreground is proposed instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := suggest.Target(strings.ToUpper(target))
			if t != suggest.TargetAA && t != suggest.TargetAAA {
				return fmt.Errorf("unknown target %q (want AA or AAA)", target)
			}

			ev, err := a.evaluate(cmd.Context(), sets, -1)
			if err != nil {
				return err
			}

			shown := 0
			for _, o := range ev.outcomes {
				if !o.OK() {
					fmt.Fprintf(a.out, "%s: %v\n", o.Scenario.Label, o.Err)
					continue
				}
				picks := suggest.FromPalette(ev.asset.Palette, o, t, limit)
				if len(picks) == 0 {
					adj, ok := suggest.Adjust(o.Foreground, o.Background, o.Scenario.Size, t)
					if !ok {
						fmt.Fprintf(a.out, "%s: no foreground reaches %s on %s\n", o.Scenario.Label, t, o.Background.Hex())
						shown++
						continue
					}
					if adj.Color != o.Foreground {
						picks = []suggest.Suggestion{adj}
					}
				}
				if len(picks) == 0 {
					continue
				}

				shown++
				fmt.Fprintf(a.out, "%s (%s, %.2f:1 %s)\n", o.Scenario.Label, o.Scenario.Spec(), o.Verdict.Ratio, o.Verdict.Level)
				for _, s := range picks {
					name := s.Label
					if name == "" {
						name = "adjusted"
					}
					fmt.Fprintf(a.out, "  %-12s %s  %6.2f:1 %-4s  Δ%.1f\n", name, s.Color.Hex(), s.Ratio, s.Level, s.Distance)
				}
			}
			if shown == 0 {
				fmt.Fprintf(a.out, "every scenario in %s reaches %s\n", formatSets(sets), t)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&sets, "set", "s", nil, "scenario set (repeatable)")
	cmd.Flags().StringVar(&target, "target", string(suggest.TargetAA), "target level: AA or AAA")
	cmd.Flags().IntVarP(&limit, "limit", "n", 3, "suggestions per scenario (0 = all)")
	return cmd
}
