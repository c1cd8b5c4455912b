package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sets",
		Short: "List the scenario sets in the palette asset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			asset, err := a.loadAsset()
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "palette %s (%d colors)\n", asset.Revision(), len(asset.Palette))
			for _, s := range asset.Sets {
				fmt.Fprintf(a.out, "  %-12s %3d scenarios  %s\n", s.Name, len(s.Scenarios), s.Description)
			}
			return nil
		},
	}
}
