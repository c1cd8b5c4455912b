package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

const styledLabelWidth = 28

// Verdict colors, shared with the browser.
var (
	ColorPass  = lipgloss.Color("#10B981")
	ColorWarn  = lipgloss.Color("#F59E0B")
	ColorFail  = lipgloss.Color("#EF4444")
	ColorMuted = lipgloss.Color("#6B7280")
)

// writeStyled renders a bordered lipgloss table. A swatch column shows the
// real foreground on the real background when the output supports color.
func writeStyled(w io.Writer, rows []Row, opts Options) error {
	r := lipgloss.NewRenderer(w)
	swatches := r.ColorProfile() != termenv.Ascii

	headers := []string{"Mode", "Label", "Size", "Contrast", "Pass?", "Level", "Details"}
	if swatches {
		headers = append([]string{"Sample"}, headers...)
	}

	cells := make([][]string, len(rows))
	for i, row := range rows {
		line := []string{
			row.Mode,
			ansi.Truncate(row.Label, styledLabelWidth, "…"),
			string(row.Size),
			ratioCell(row),
			passCell(row),
			levelCell(row),
			detailCell(row),
		}
		if swatches {
			line = append([]string{Swatch(r, row)}, line...)
		}
		cells[i] = line
	}

	levelCol := len(headers) - 2
	headerStyle := r.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := r.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.NewStyle().Foreground(ColorMuted)).
		Headers(headers...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == levelCol && row >= 0 && row < len(rows) {
				return cellStyle.Foreground(LevelColor(rows[row]))
			}
			return cellStyle
		})

	out := t.String() + "\n"
	if opts.Revision != "" {
		out = r.NewStyle().Foreground(ColorMuted).Render("palette "+opts.Revision) + "\n" + out
	}
	out += Summarize(rows).String() + "\n"
	_, err := io.WriteString(w, out)
	return err
}

// Swatch renders a short sample of the row's foreground on its background.
func Swatch(r *lipgloss.Renderer, row Row) string {
	if row.Error != "" {
		return "    "
	}
	return r.NewStyle().
		Foreground(lipgloss.Color(row.Foreground)).
		Background(lipgloss.Color(row.Background)).
		Render(" Aa ")
}

// LevelColor picks the color used for a row's level tag.
func LevelColor(row Row) lipgloss.Color {
	switch {
	case row.Error != "":
		return ColorFail
	case row.AAA:
		return ColorPass
	case row.Pass:
		return ColorWarn
	default:
		return ColorFail
	}
}

// Describe is a one-line summary of a row, used in status lines.
func Describe(row Row) string {
	if row.Error != "" {
		return fmt.Sprintf("%s: %s", row.Label, row.Error)
	}
	return fmt.Sprintf("%s: %s (%s, %s text)", row.Label, ratioCell(row), row.Level, row.Size)
}
