package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/marcus/wcagcheck/internal/config"
	"github.com/marcus/wcagcheck/internal/palette"
	"github.com/marcus/wcagcheck/internal/report"
)

// errChecksFailed makes the process exit 1 without printing an error; the
// report already shows what failed.
var errChecksFailed = errors.New("contrast checks failed")

// app holds state shared by every subcommand.
type app struct {
	configPath string
	envFile    string
	assetPath  string
	debug      bool

	cfg    *config.Config
	logger *slog.Logger
	out    io.Writer
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}
	check := &checkOptions{}

	rootCmd := &cobra.Command{
		Use:   "wcagcheck",
		Short: "Check UI color pairs against WCAG contrast requirements",
		Long: `wcagcheck evaluates foreground/background color pairs from a palette asset
and reports their WCAG 2.x contrast ratio and AA/AAA conformance.

Backgrounds may be solid palette colors or a semi-transparent overlay
composited onto a base color.

Examples:
  wcagcheck                          # check every scenario set
  wcagcheck check --set proposed     # check one set
  wcagcheck pair '#ffffff' '#0f172a' # check two literal colors
  wcagcheck browse                   # interactive browser`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runCheck(cmd, check)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "path to config file")
	pf.StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before config")
	pf.StringVar(&a.assetPath, "asset", "", "palette asset file (default: built-in)")
	pf.BoolVar(&a.debug, "debug", false, "enable debug logging")

	check.bind(rootCmd)

	rootCmd.AddCommand(
		newCheckCmd(a),
		newPairCmd(a),
		newSetsCmd(a),
		newSuggestCmd(a),
		newHistoryCmd(a),
		newWatchCmd(a),
		newBrowseCmd(a),
		newVersionCmd(a),
	)
	return rootCmd
}

// setup configures logging and loads the env file and config.
func (a *app) setup() error {
	logLevel := slog.LevelInfo
	if a.debug {
		logLevel = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(a.logger)

	if err := config.LoadEnvFile(a.envFile); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}

	cfg, err := config.LoadFrom(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.assetPath != "" {
		cfg.Asset = config.ExpandPath(a.assetPath)
	}
	a.cfg = cfg
	return nil
}

// loadAsset returns the configured asset file or the built-in one.
func (a *app) loadAsset() (*palette.Asset, error) {
	if a.cfg.Asset == "" {
		return palette.DefaultAsset()
	}
	a.logger.Debug("loading asset", "path", a.cfg.Asset)
	return palette.LoadAsset(a.cfg.Asset)
}

// isTerminal reports whether stdout is an interactive terminal.
func (a *app) isTerminal() bool {
	f, ok := a.out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// reportOptions resolves the output format: flag, then config, then styled
// on a terminal and text otherwise.
func (a *app) reportOptions(flagFormat, revision string) (report.Options, error) {
	tty := a.isTerminal()
	name := flagFormat
	if name == "" {
		name = a.cfg.Output.Format
	}
	if name == "" {
		name = string(report.FormatText)
		if tty {
			name = string(report.FormatStyled)
		}
	}
	format, err := report.ParseFormat(name)
	if err != nil {
		return report.Options{}, err
	}

	width := a.cfg.Output.Width
	if tty {
		if w, _, err := term.GetSize(int(a.out.(*os.File).Fd())); err == nil && w > 0 {
			width = w
		}
	}
	return report.Options{
		Format:   format,
		Revision: revision,
		Terminal: tty,
		Width:    width,
	}, nil
}
