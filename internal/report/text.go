package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

const (
	modeWidth     = 6
	labelWidth    = 20
	contrastWidth = 8
	passWidth     = 6
	levelWidth    = 5
)

// writeText prints the aligned pipe table the contrast scripts always used.
func writeText(w io.Writer, rows []Row, opts Options) error {
	var b strings.Builder
	if opts.Revision != "" {
		fmt.Fprintf(&b, "palette %s\n", opts.Revision)
	}
	b.WriteString(textLine("Mode", "Label", "Contrast", "Pass?", "Level", "Details"))
	b.WriteString(strings.Repeat("-", 80))
	b.WriteByte('\n')
	for _, r := range rows {
		b.WriteString(textLine(r.Mode, r.Label, ratioCell(r), passCell(r), levelCell(r), detailCell(r)))
	}
	b.WriteString(Summarize(rows).String())
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

func textLine(mode, label, ratio, pass, level, details string) string {
	return strings.Join([]string{
		cell(mode, modeWidth),
		cell(label, labelWidth),
		cell(ratio, contrastWidth),
		cell(pass, passWidth),
		cell(level, levelWidth),
		details,
	}, " | ") + "\n"
}

// cell pads s to width display columns, truncating with an ellipsis if longer.
func cell(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		s = truncate.StringWithTail(s, uint(width), "…")
	}
	return runewidth.FillRight(s, width)
}
