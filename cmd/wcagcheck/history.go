package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marcus/wcagcheck/internal/history"
	"github.com/marcus/wcagcheck/internal/report"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		limit  int
		format string
	)
	cmd := &cobra.Command{
		Use:   "history [RUN-ID]",
		Short: "List recorded runs, or show one run's report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.NewStore(a.cfg.History.DBPath, a.logger)
			if err != nil {
				return err
			}
			defer store.Close()

			if len(args) == 1 {
				run, err := store.Get(args[0])
				if err != nil {
					return err
				}
				if run == nil {
					return fmt.Errorf("no recorded run %q", args[0])
				}
				return showRun(a, run, format)
			}

			runs, err := store.Recent(limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintf(a.out, "no runs recorded in %s\n", a.cfg.History.DBPath)
				return nil
			}
			for _, r := range runs {
				fmt.Fprintf(a.out, "%s  %s  %-22s %-16s %s\n",
					r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Revision, r.Sets, r.Summary)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of runs to list")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format for a single run: text, styled, markdown, json")
	return cmd
}

func showRun(a *app, run *history.Run, format string) error {
	opts, err := a.reportOptions(format, run.Revision)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "run %s at %s\n", run.ID, run.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	return report.WriteRows(a.out, run.Rows, opts)
}
