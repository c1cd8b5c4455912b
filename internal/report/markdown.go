package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Markdown builds a GitHub-flavored markdown table of rows.
func Markdown(rows []Row, revision string) string {
	var b strings.Builder
	b.WriteString("# Contrast report\n\n")
	if revision != "" {
		fmt.Fprintf(&b, "Palette `%s`\n\n", revision)
	}
	b.WriteString("| Mode | Label | Size | Contrast | Pass? | Level | Details |\n")
	b.WriteString("|---|---|---|---:|---|---|---|\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			mdEscape(r.Mode), mdEscape(r.Label), r.Size, ratioCell(r),
			passCell(r), levelCell(r), mdEscape(detailCell(r)))
	}
	fmt.Fprintf(&b, "\n%s\n", Summarize(rows))
	return b.String()
}

func mdEscape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// writeMarkdown writes raw markdown, or glamour-rendered markdown on terminals.
func writeMarkdown(w io.Writer, rows []Row, opts Options) error {
	md := Markdown(rows, opts.Revision)
	if !opts.Terminal {
		_, err := io.WriteString(w, md)
		return err
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(opts.Width),
	)
	if err != nil {
		return fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
