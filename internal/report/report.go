// Package report renders evaluated scenarios as text, styled, markdown or JSON.
package report

import (
	"fmt"
	"io"

	"github.com/marcus/wcagcheck/internal/contrast"
	"github.com/marcus/wcagcheck/internal/palette"
)

// Format selects a report renderer.
type Format string

const (
	FormatText     Format = "text"
	FormatStyled   Format = "styled"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatStyled, FormatMarkdown, FormatJSON}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown report format %q", s)
}

// Options controls rendering.
type Options struct {
	Format Format
	// Revision identifies the palette asset the outcomes came from.
	Revision string
	// Terminal enables ANSI output (glamour markdown, chroma JSON).
	Terminal bool
	// Width is the terminal width used for wrapping; 0 means 100.
	Width int
}

// Row is the flattened, printable form of one outcome.
type Row struct {
	Mode       string         `json:"mode,omitempty"`
	Element    string         `json:"element,omitempty"`
	Label      string         `json:"label"`
	Size       contrast.Size  `json:"size"`
	Ratio      float64        `json:"ratio"`
	Pass       bool           `json:"pass"`
	AAA        bool           `json:"aaa"`
	Level      contrast.Level `json:"level,omitempty"`
	Spec       string         `json:"spec"`
	Background string         `json:"background,omitempty"`
	Foreground string         `json:"foreground,omitempty"`
	Error      string         `json:"error,omitempty"`
}

// Summary counts rows by result.
type Summary struct {
	Total  int `json:"total"`
	Passed int `json:"passed"`
	Failed int `json:"failed"`
	Errors int `json:"errors"`
}

// Rows flattens outcomes in order.
func Rows(outcomes []palette.Outcome) []Row {
	rows := make([]Row, len(outcomes))
	for i, o := range outcomes {
		s := o.Scenario
		row := Row{
			Mode:    s.Mode,
			Element: s.Element,
			Label:   s.Label,
			Size:    s.Size,
			Spec:    s.Spec(),
		}
		if o.Err != nil {
			row.Error = o.Err.Error()
		} else {
			row.Ratio = o.Verdict.Ratio
			row.Pass = o.Verdict.AA
			row.AAA = o.Verdict.AAA
			row.Level = o.Verdict.Level
			row.Background = o.Background.Hex()
			row.Foreground = o.Foreground.Hex()
		}
		rows[i] = row
	}
	return rows
}

// Summarize counts passing, failing and errored rows.
func Summarize(rows []Row) Summary {
	s := Summary{Total: len(rows)}
	for _, r := range rows {
		switch {
		case r.Error != "":
			s.Errors++
		case r.Pass:
			s.Passed++
		default:
			s.Failed++
		}
	}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("%d scenarios: %d pass, %d fail, %d errors", s.Total, s.Passed, s.Failed, s.Errors)
}

// Write renders outcomes to w in the requested format.
func Write(w io.Writer, outcomes []palette.Outcome, opts Options) error {
	return WriteRows(w, Rows(outcomes), opts)
}

// WriteRows renders already flattened rows, such as those read back from
// history.
func WriteRows(w io.Writer, rows []Row, opts Options) error {
	if opts.Width <= 0 {
		opts.Width = 100
	}
	switch opts.Format {
	case FormatText, "":
		return writeText(w, rows, opts)
	case FormatStyled:
		return writeStyled(w, rows, opts)
	case FormatMarkdown:
		return writeMarkdown(w, rows, opts)
	case FormatJSON:
		return writeJSON(w, rows, opts)
	default:
		return fmt.Errorf("unknown report format %q", opts.Format)
	}
}

func ratioCell(r Row) string {
	if r.Error != "" {
		return "-"
	}
	return fmt.Sprintf("%.2f:1", r.Ratio)
}

func passCell(r Row) string {
	switch {
	case r.Error != "":
		return "ERROR"
	case r.Pass:
		return "YES"
	default:
		return "NO"
	}
}

func levelCell(r Row) string {
	if r.Error != "" {
		return "-"
	}
	return string(r.Level)
}

func detailCell(r Row) string {
	if r.Error != "" {
		return r.Spec + ": " + r.Error
	}
	return r.Spec
}
