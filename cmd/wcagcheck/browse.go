package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/marcus/wcagcheck/internal/report"
	"github.com/marcus/wcagcheck/internal/state"
	"github.com/marcus/wcagcheck/internal/tui"
	"github.com/marcus/wcagcheck/internal/watch"
)

func newBrowseCmd(a *app) *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse results interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			// Load persistent state (ignore errors - state is optional)
			_ = state.Init()
			saved := state.GetBrowseState()
			if len(sets) == 0 {
				sets = saved.Sets
			}

			load := func() ([]report.Row, string, error) {
				ev, err := a.evaluate(ctx, sets, -1)
				if err != nil {
					return nil, "", err
				}
				return report.Rows(ev.outcomes), ev.asset.Revision(), nil
			}
			rows, rev, err := load()
			if err != nil {
				return err
			}

			model := tui.New(rows, rev, load).WithFailingOnly(saved.FailingOnly)
			p := tea.NewProgram(model, tea.WithAltScreen())

			// Live reload when the asset is a file on disk.
			if a.cfg.Asset != "" {
				changes, err := watch.File(ctx, a.cfg.Asset, a.cfg.Watch.Debounce, a.logger)
				if err != nil {
					a.logger.Warn("live reload disabled", "err", err)
				} else {
					go func() {
						for range changes {
							rows, rev, err := load()
							p.Send(tui.RowsMsg{Rows: rows, Revision: rev, Err: err})
						}
					}()
				}
			}

			final, err := p.Run()
			if err != nil {
				return err
			}
			if m, ok := final.(tui.Model); ok {
				if err := state.SetBrowseState(state.BrowseState{FailingOnly: m.FailingOnly(), Sets: sets}); err != nil {
					a.logger.Debug("saving browse state failed", "err", err)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&sets, "set", "s", nil, "scenario set (repeatable)")
	return cmd
}
