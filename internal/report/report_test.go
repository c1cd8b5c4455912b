package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/marcus/wcagcheck/internal/contrast"
	"github.com/marcus/wcagcheck/internal/palette"
)

func sampleOutcomes(t *testing.T) []palette.Outcome {
	t.Helper()
	p := palette.Palette{
		"white":     "#ffffff",
		"slate-300": "#cbd5e1",
		"slate-800": "#1e293b",
		"slate-900": "#0f172a",
		"teal-400":  "#2dd4bf",
		"teal-900":  "#134e4a",
	}
	scenarios := []palette.Scenario{
		{Mode: "Light", Label: "Card H3", Background: palette.Solid("white"), Foreground: "slate-900", Size: contrast.SizeNormal},
		{Mode: "Dark", Label: "Shield Icon", Background: palette.Layered("teal-900", 0.3, "slate-800"), Foreground: "teal-400", Size: contrast.SizeLarge},
		{Mode: "Light", Label: "Muted Text", Background: palette.Solid("white"), Foreground: "slate-300", Size: contrast.SizeNormal},
		{Mode: "Dark", Label: "Broken", Background: palette.Solid("white"), Foreground: "missing", Size: contrast.SizeNormal},
	}
	outcomes, _ := palette.Evaluate(p, scenarios)
	return outcomes
}

func TestRowsAndSummary(t *testing.T) {
	rows := Rows(sampleOutcomes(t))
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}
	if rows[0].Level != contrast.LevelAAA || !rows[0].Pass {
		t.Errorf("row 0 = %+v, want AAA pass", rows[0])
	}
	if rows[1].Spec != "teal-900@0.30/slate-800 vs teal-400" {
		t.Errorf("row 1 spec = %q", rows[1].Spec)
	}
	if rows[1].Background != "#1a343f" {
		t.Errorf("row 1 background = %q, want #1a343f", rows[1].Background)
	}
	if rows[2].Pass || rows[2].Level != contrast.LevelFail {
		t.Errorf("row 2 = %+v, want fail", rows[2])
	}
	if rows[3].Error == "" {
		t.Error("row 3 should carry an error")
	}

	s := Summarize(rows)
	if s != (Summary{Total: 4, Passed: 2, Failed: 1, Errors: 1}) {
		t.Errorf("Summarize = %+v", s)
	}
	if got := s.String(); got != "4 scenarios: 2 pass, 1 fail, 1 errors" {
		t.Errorf("Summary.String() = %q", got)
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleOutcomes(t), Options{Format: FormatText, Revision: "v1+abcd1234"}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	if lines[0] != "palette v1+abcd1234" {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Mode   | Label                | Contrast | Pass?  | Level | Details") {
		t.Errorf("header = %q", lines[1])
	}
	if lines[3] != "Light  | Card H3              | 17.85:1  | YES    | AAA   | white vs slate-900" {
		t.Errorf("row = %q", lines[3])
	}
	if !strings.Contains(lines[4], "7.02:1") || !strings.Contains(lines[4], "teal-900@0.30/slate-800 vs teal-400") {
		t.Errorf("composite row = %q", lines[4])
	}
	if !strings.Contains(lines[5], "| NO     | Fail  |") {
		t.Errorf("failing row = %q", lines[5])
	}
	if !strings.Contains(lines[6], "ERROR") || !strings.Contains(lines[6], "unknown palette label") {
		t.Errorf("error row = %q", lines[6])
	}
	if lines[len(lines)-1] != "4 scenarios: 2 pass, 1 fail, 1 errors" {
		t.Errorf("summary = %q", lines[len(lines)-1])
	}
}

func TestCell(t *testing.T) {
	if got := cell("abc", 5); got != "abc  " {
		t.Errorf("cell pad = %q", got)
	}
	got := cell("Icon Indigo (Existing) and more", 20)
	if !strings.HasSuffix(got, "…") {
		t.Errorf("cell truncate = %q, want ellipsis", got)
	}
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleOutcomes(t), Options{Format: FormatMarkdown}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "# Contrast report") {
		t.Errorf("markdown missing title: %q", out)
	}
	if !strings.Contains(out, "| Light | Card H3 | normal | 17.85:1 | YES | AAA | white vs slate-900 |") {
		t.Errorf("markdown row missing:\n%s", out)
	}
	if got := mdEscape("a|b"); got != `a\|b` {
		t.Errorf("mdEscape = %q", got)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleOutcomes(t), Options{Format: FormatJSON, Revision: "r1"}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	var doc Document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if doc.Revision != "r1" || doc.Summary.Total != 4 || len(doc.Rows) != 4 {
		t.Errorf("document = %+v", doc)
	}
	if doc.Rows[0].Label != "Card H3" || doc.Rows[0].Level != contrast.LevelAAA {
		t.Errorf("first row = %+v", doc.Rows[0])
	}
}

func TestWriteStyled(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleOutcomes(t), Options{Format: FormatStyled}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Card H3", "17.85:1", "Shield Icon", "ERROR", "╭"} {
		if !strings.Contains(out, want) {
			t.Errorf("styled output missing %q:\n%s", want, out)
		}
	}
	// A buffer has no color support, so no swatch column is drawn.
	if strings.Contains(out, "Sample") {
		t.Errorf("swatch column rendered without color support:\n%s", out)
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats {
		got, err := ParseFormat(string(f))
		if err != nil || got != f {
			t.Errorf("ParseFormat(%q) = %q, %v", f, got, err)
		}
	}
	if _, err := ParseFormat("html"); err == nil {
		t.Error("expected error for unknown format")
	}
	if err := Write(&bytes.Buffer{}, nil, Options{Format: "html"}); err == nil {
		t.Error("Write should reject unknown format")
	}
}

func TestDescribe(t *testing.T) {
	rows := Rows(sampleOutcomes(t))
	if got := Describe(rows[0]); got != "Card H3: 17.85:1 (AAA, normal text)" {
		t.Errorf("Describe = %q", got)
	}
	if LevelColor(rows[2]) != ColorFail || LevelColor(rows[0]) != ColorPass {
		t.Error("unexpected level colors")
	}
}
