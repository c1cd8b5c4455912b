package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/marcus/wcagcheck/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	opts := &checkOptions{}
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run the check whenever the palette asset file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.Asset == "" {
				return errors.New("watch needs an asset file (--asset or config \"asset\")")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			changes, err := watch.File(ctx, a.cfg.Asset, a.cfg.Watch.Debounce, a.logger)
			if err != nil {
				return fmt.Errorf("watch %s: %w", a.cfg.Asset, err)
			}
			a.logger.Info("watching", "path", a.cfg.Asset, "debounce", a.cfg.Watch.Debounce)

			a.checkOnce(ctx, cmd, opts)
			for range changes {
				fmt.Fprintln(a.out)
				a.checkOnce(ctx, cmd, opts)
			}
			return nil
		},
	}
	opts.bind(cmd)
	return cmd
}

// checkOnce runs a check and logs, rather than returns, its failure so the
// watch loop keeps going.
func (a *app) checkOnce(ctx context.Context, cmd *cobra.Command, opts *checkOptions) {
	cmd.SetContext(ctx)
	err := a.runCheck(cmd, opts)
	switch {
	case err == nil:
		a.logger.Info("all scenarios pass", "scope", formatSets(opts.sets))
	case errors.Is(err, errChecksFailed):
		a.logger.Warn("some scenarios fail", "scope", formatSets(opts.sets))
	default:
		a.logger.Error("check failed", "err", err)
	}
}
