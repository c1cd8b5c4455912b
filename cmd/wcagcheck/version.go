package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marcus/wcagcheck/internal/palette"
	"github.com/marcus/wcagcheck/internal/version"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(a.out, "wcagcheck version %s (%s install)\n",
				version.Effective(Version), version.DetectInstallMethod())
			if asset, err := palette.DefaultAsset(); err == nil {
				fmt.Fprintf(a.out, "built-in palette %s\n", asset.Revision())
			}
			return nil
		},
	}
}
