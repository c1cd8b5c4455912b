// Package tui is an interactive browser for contrast check results.
package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/wcagcheck/internal/report"
)

const detailHeight = 7

// LoadFunc re-evaluates the scenarios and returns fresh rows and the asset
// revision they came from.
type LoadFunc func() ([]report.Row, string, error)

// RowsMsg replaces the rows shown by the browser.
type RowsMsg struct {
	Rows     []report.Row
	Revision string
	Err      error
}

type statusMsg string

// Model is the bubbletea model for the results browser.
type Model struct {
	rows        []report.Row
	visible     []int // indexes into rows after filtering
	cursor      int
	offset      int
	failingOnly bool
	revision    string
	status      string

	width  int
	height int

	load     LoadFunc
	keys     keyMap
	help     help.Model
	detail   viewport.Model
	renderer *lipgloss.Renderer
}

// New creates a browser over rows. load may be nil, which disables reload.
func New(rows []report.Row, revision string, load LoadFunc) Model {
	m := Model{
		rows:     rows,
		revision: revision,
		load:     load,
		keys:     defaultKeys(),
		help:     help.New(),
		detail:   viewport.New(80, detailHeight),
		renderer: lipgloss.DefaultRenderer(),
		width:    80,
		height:   24,
	}
	m.refilter()
	return m
}

// WithFailingOnly returns m with the failing-only filter set.
func (m Model) WithFailingOnly(on bool) Model {
	m.failingOnly = on
	m.refilter()
	return m
}

// FailingOnly reports whether the failing-only filter is on.
func (m Model) FailingOnly() bool {
	return m.failingOnly
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.detail.Width = msg.Width
		m.help.Width = msg.Width
		m.clampOffset()
		m.syncDetail()
		return m, nil

	case RowsMsg:
		if msg.Err != nil {
			m.status = "reload failed: " + msg.Err.Error()
			return m, nil
		}
		m.rows = msg.Rows
		m.revision = msg.Revision
		m.status = fmt.Sprintf("reloaded %s", msg.Revision)
		m.refilter()
		return m, nil

	case statusMsg:
		m.status = string(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Top):
		m.move(-len(m.visible))
	case key.Matches(msg, m.keys.Bottom):
		m.move(len(m.visible))
	case key.Matches(msg, m.keys.Filter):
		m.failingOnly = !m.failingOnly
		m.refilter()
	case key.Matches(msg, m.keys.Yank):
		if row, ok := m.Selected(); ok && row.Error == "" {
			return m, yank(row)
		}
	case key.Matches(msg, m.keys.Reload):
		if m.load != nil {
			return m, reload(m.load)
		}
	default:
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}
	return m, nil
}

func yank(row report.Row) tea.Cmd {
	return func() tea.Msg {
		text := fmt.Sprintf("%s on %s", row.Foreground, row.Background)
		if err := clipboard.WriteAll(text); err != nil {
			return statusMsg("copy failed: " + err.Error())
		}
		return statusMsg("copied " + text)
	}
}

func reload(load LoadFunc) tea.Cmd {
	return func() tea.Msg {
		rows, rev, err := load()
		return RowsMsg{Rows: rows, Revision: rev, Err: err}
	}
}

// Selected returns the row under the cursor.
func (m Model) Selected() (report.Row, bool) {
	if len(m.visible) == 0 {
		return report.Row{}, false
	}
	return m.rows[m.visible[m.cursor]], true
}

// refilter rebuilds the visible index, keeping the selected row when it
// survives the filter.
func (m *Model) refilter() {
	keep := -1
	if len(m.visible) > 0 && m.cursor < len(m.visible) {
		keep = m.visible[m.cursor]
	}

	m.visible = make([]int, 0, len(m.rows))
	for i, r := range m.rows {
		if m.failingOnly && r.Pass && r.Error == "" {
			continue
		}
		m.visible = append(m.visible, i)
	}

	m.cursor = 0
	for vi, ri := range m.visible {
		if ri == keep {
			m.cursor = vi
			break
		}
	}
	m.clampOffset()
	m.syncDetail()
}

func (m *Model) move(delta int) {
	if len(m.visible) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	m.clampOffset()
	m.syncDetail()
}

func (m Model) listHeight() int {
	// title, divider and help lines
	h := m.height - detailHeight - 3
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) clampOffset() {
	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *Model) syncDetail() {
	row, ok := m.Selected()
	if !ok {
		m.detail.SetContent("no scenarios")
		return
	}
	m.detail.SetContent(m.renderDetail(row))
	m.detail.GotoTop()
}

func (m Model) renderDetail(row report.Row) string {
	r := m.renderer
	label := r.NewStyle().Bold(true).Render(row.Label)
	if row.Error != "" {
		return label + "\n" + r.NewStyle().Foreground(report.ColorFail).Render(row.Error)
	}

	var b strings.Builder
	b.WriteString(label)
	if row.Mode != "" || row.Element != "" {
		b.WriteString(r.NewStyle().Foreground(report.ColorMuted).Render("  " + strings.TrimSpace(row.Mode+" "+row.Element)))
	}
	b.WriteString("\n")
	sample := r.NewStyle().
		Foreground(lipgloss.Color(row.Foreground)).
		Background(lipgloss.Color(row.Background)).
		Padding(0, 2).
		Render("The quick brown fox")
	b.WriteString(sample + "\n")
	fmt.Fprintf(&b, "%s\n", row.Spec)
	fmt.Fprintf(&b, "fg %s  bg %s\n", row.Foreground, row.Background)
	level := r.NewStyle().Foreground(report.LevelColor(row)).Render(string(row.Level))
	fmt.Fprintf(&b, "%.2f:1  %s  (%s text)", row.Ratio, level, row.Size)
	return b.String()
}

// View implements tea.Model.
func (m Model) View() string {
	r := m.renderer
	var b strings.Builder

	title := r.NewStyle().Bold(true).Render("wcagcheck")
	meta := fmt.Sprintf("  %d/%d scenarios", len(m.visible), len(m.rows))
	if m.failingOnly {
		meta += " (failing only)"
	}
	if m.revision != "" {
		meta += "  palette " + m.revision
	}
	b.WriteString(title + r.NewStyle().Foreground(report.ColorMuted).Render(meta) + "\n")

	h := m.listHeight()
	end := m.offset + h
	if end > len(m.visible) {
		end = len(m.visible)
	}
	for vi := m.offset; vi < end; vi++ {
		b.WriteString(m.renderRow(m.rows[m.visible[vi]], vi == m.cursor) + "\n")
	}
	for i := end - m.offset; i < h; i++ {
		b.WriteString("\n")
	}

	b.WriteString(r.NewStyle().Foreground(report.ColorMuted).Render(strings.Repeat("─", max(m.width, 1))) + "\n")
	b.WriteString(m.detail.View() + "\n")

	footer := m.help.View(m.keys)
	if m.status != "" {
		footer = m.status
	}
	b.WriteString(footer)
	return b.String()
}

func (m Model) renderRow(row report.Row, selected bool) string {
	r := m.renderer
	cursor := "  "
	if selected {
		cursor = "> "
	}
	ratio := "     -"
	if row.Error == "" {
		ratio = fmt.Sprintf("%6.2f", row.Ratio)
	}
	tag := string(row.Level)
	if row.Error != "" {
		tag = "ERR"
	}
	tag = r.NewStyle().Foreground(report.LevelColor(row)).Width(4).Render(tag)

	labelWidth := m.width - 20
	if labelWidth < 8 {
		labelWidth = 8
	}
	label := ansi.Truncate(row.Label, labelWidth, "…")
	line := cursor + report.Swatch(r, row) + " " + ratio + " " + tag + " " + label
	if selected {
		line = r.NewStyle().Bold(true).Render(line)
	}
	return line
}
