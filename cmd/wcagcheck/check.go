package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/marcus/wcagcheck/internal/history"
	"github.com/marcus/wcagcheck/internal/palette"
	"github.com/marcus/wcagcheck/internal/report"
)

type checkOptions struct {
	sets    []string
	format  string
	strict  bool
	workers int
	copy    bool
	record  bool
}

func (o *checkOptions) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringSliceVarP(&o.sets, "set", "s", nil, "scenario set to check (repeatable, default: config or all)")
	f.StringVarP(&o.format, "format", "f", "", "output format: text, styled, markdown, json")
	f.BoolVar(&o.strict, "strict", false, "abort without a report if any scenario fails to evaluate")
	f.IntVarP(&o.workers, "workers", "w", -1, "parallel workers (0 = one per CPU, default: config)")
	f.BoolVar(&o.copy, "copy", false, "copy the plain-text report to the clipboard")
	f.BoolVar(&o.record, "record", false, "record the run in the history database")
}

func newCheckCmd(a *app) *cobra.Command {
	opts := &checkOptions{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Evaluate scenario sets and print a report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runCheck(cmd, opts)
		},
	}
	opts.bind(cmd)
	return cmd
}

// evaluation is one pass over the selected scenarios.
type evaluation struct {
	asset    *palette.Asset
	sets     []string
	outcomes []palette.Outcome
	err      error
}

// evaluate loads the asset and runs the selected sets.
func (a *app) evaluate(ctx context.Context, sets []string, workers int) (*evaluation, error) {
	asset, err := a.loadAsset()
	if err != nil {
		return nil, err
	}
	if len(sets) == 0 {
		sets = a.cfg.Sets
	}
	scenarios, err := asset.Scenarios(sets...)
	if err != nil {
		return nil, err
	}
	if len(sets) == 0 {
		sets = asset.SetNames()
	}
	if workers < 0 {
		workers = a.cfg.Evaluate.Workers
	}

	ev := &evaluation{asset: asset, sets: sets}
	if workers == 1 {
		ev.outcomes, ev.err = palette.Evaluate(asset.Palette, scenarios)
	} else {
		ev.outcomes, ev.err = palette.EvaluateParallel(ctx, asset.Palette, scenarios, workers)
	}
	a.logger.Debug("evaluated", "revision", asset.Revision(), "sets", sets, "scenarios", len(scenarios), "workers", workers)
	return ev, nil
}

func (a *app) runCheck(cmd *cobra.Command, opts *checkOptions) error {
	ev, err := a.evaluate(cmd.Context(), opts.sets, opts.workers)
	if err != nil {
		return err
	}
	if ev.err != nil && (opts.strict || a.cfg.Evaluate.Strict) {
		return ev.err
	}

	ropts, err := a.reportOptions(opts.format, ev.asset.Revision())
	if err != nil {
		return err
	}
	if err := report.Write(a.out, ev.outcomes, ropts); err != nil {
		return err
	}

	rows := report.Rows(ev.outcomes)
	if opts.copy {
		var buf bytes.Buffer
		if err := report.Write(&buf, ev.outcomes, report.Options{Format: report.FormatText, Revision: ev.asset.Revision()}); err != nil {
			return err
		}
		if err := clipboard.WriteAll(buf.String()); err != nil {
			a.logger.Warn("copy to clipboard failed", "err", err)
		}
	}
	if opts.record || a.cfg.History.Enabled {
		if err := a.record(ev, rows); err != nil {
			a.logger.Warn("recording history failed", "err", err)
		}
	}

	if s := report.Summarize(rows); s.Failed > 0 || s.Errors > 0 {
		return errChecksFailed
	}
	return nil
}

// record stores the run and logs any label that regressed since the last
// run of the same sets.
func (a *app) record(ev *evaluation, rows []report.Row) error {
	store, err := history.NewStore(a.cfg.History.DBPath, a.logger)
	if err != nil {
		return err
	}
	defer store.Close()

	run := &history.Run{
		Revision: ev.asset.Revision(),
		Sets:     strings.Join(ev.sets, ","),
		Rows:     rows,
	}

	prev, err := a.lastRun(store, run.Sets)
	if err != nil {
		return err
	}
	if err := store.Record(run); err != nil {
		return err
	}
	if prev != nil {
		for _, label := range history.Regressions(prev, run) {
			a.logger.Warn("contrast regressed", "label", label, "since", prev.Revision)
		}
	}
	a.logger.Info("recorded run", "id", run.ID, "summary", run.Summary.String())
	return nil
}

func (a *app) lastRun(store *history.Store, sets string) (*history.Run, error) {
	recent, err := store.Recent(20)
	if err != nil {
		return nil, err
	}
	for _, r := range recent {
		if r.Sets == sets {
			return store.Get(r.ID)
		}
	}
	return nil, nil
}

func formatSets(sets []string) string {
	if len(sets) == 0 {
		return "all sets"
	}
	return fmt.Sprintf("sets %s", strings.Join(sets, ", "))
}
