package palette

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/marcus/wcagcheck/internal/color"
	"github.com/marcus/wcagcheck/internal/contrast"
)

func TestEvaluate_EndToEnd(t *testing.T) {
	p := Palette{"white": "#ffffff", "slate-900": "#0f172a"}
	scenarios := []Scenario{
		{Label: "heading", Background: Solid("white"), Foreground: "slate-900", Size: contrast.SizeLarge},
	}

	outcomes, err := Evaluate(p, scenarios)
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}
	if len(outcomes) != 1 {
		t.Fatalf("got %d outcomes, want 1", len(outcomes))
	}
	v := outcomes[0].Verdict
	if math.Abs(v.Ratio-17.85) > 0.01 {
		t.Errorf("ratio = %.4f, want ~17.85", v.Ratio)
	}
	if v.Level != contrast.LevelAAA || !v.AA || !v.AAA {
		t.Errorf("verdict = %+v, want AAA", v)
	}
	if outcomes[0].Background != color.White {
		t.Errorf("background = %v, want white", outcomes[0].Background)
	}
}

func TestEvaluate_CompositeBackground(t *testing.T) {
	scenarios := []Scenario{{
		Label:      "Shield Icon",
		Background: Layered("teal-900", 0.3, "slate-800"),
		Foreground: "teal-400",
		Size:       contrast.SizeLarge,
	}}

	outcomes, err := Evaluate(testPalette(), scenarios)
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}
	o := outcomes[0]
	// floor gives (26,52,63); rounding would have produced (27,52,64)
	if o.Background != (color.Color{R: 26, G: 52, B: 63}) {
		t.Errorf("effective background = %v, want (26,52,63)", o.Background)
	}
	if math.Abs(o.Verdict.Ratio-7.02) > 0.005 {
		t.Errorf("ratio = %.4f, want ~7.02", o.Verdict.Ratio)
	}
	if o.Verdict.Level != contrast.LevelAAA {
		t.Errorf("level = %s, want AAA", o.Verdict.Level)
	}
}

func TestEvaluate_Errors(t *testing.T) {
	scenarios := []Scenario{
		{Label: "ok", Background: Solid("white"), Foreground: "slate-900", Size: contrast.SizeNormal},
		{Label: "missing fg", Background: Solid("white"), Foreground: "nope", Size: contrast.SizeNormal},
		{Label: "missing bg", Background: Solid("nope"), Foreground: "white", Size: contrast.SizeNormal},
		{Label: "bad size", Background: Solid("white"), Foreground: "slate-900", Size: "tiny"},
		{Label: "bad hex", Background: Solid("broken"), Foreground: "white", Size: contrast.SizeNormal},
		{Label: "bad opacity", Background: Layered("teal-900", -1, "white"), Foreground: "white", Size: contrast.SizeNormal},
	}
	wantErrs := []error{
		nil,
		ErrUnknownPaletteLabel,
		ErrUnknownPaletteLabel,
		contrast.ErrInvalidSizeCategory,
		color.ErrInvalidColorFormat,
		color.ErrInvalidOpacity,
	}

	outcomes, err := Evaluate(testPalette(), scenarios)
	if err == nil {
		t.Fatal("expected joined error")
	}
	for i, want := range wantErrs {
		o := outcomes[i]
		if o.Scenario.Label != scenarios[i].Label {
			t.Errorf("outcome %d label = %q, want %q", i, o.Scenario.Label, scenarios[i].Label)
		}
		if want == nil {
			if !o.OK() {
				t.Errorf("outcome %d unexpected error: %v", i, o.Err)
			}
			continue
		}
		if !errors.Is(o.Err, want) {
			t.Errorf("outcome %d err = %v, want %v", i, o.Err, want)
		}
		if !errors.Is(err, want) {
			t.Errorf("joined error missing %v", want)
		}
		if o.Verdict != (contrast.Verdict{}) {
			t.Errorf("outcome %d carries a verdict despite error: %+v", i, o.Verdict)
		}
	}
}

func TestEvaluate_DoesNotMutatePalette(t *testing.T) {
	p := testPalette()
	before := len(p)
	_, _ = Evaluate(p, []Scenario{
		{Label: "x", Background: Layered("teal-900", 0.3, "slate-800"), Foreground: "teal-400", Size: contrast.SizeLarge},
	})
	if len(p) != before || p["teal-900"] != "#134e4a" {
		t.Errorf("palette mutated: %v", p)
	}
}

func TestEvaluateParallel_PreservesOrder(t *testing.T) {
	p := Palette{}
	var scenarios []Scenario
	for i := 0; i < 64; i++ {
		label := fmt.Sprintf("c%d", i)
		p[label] = color.Color{R: uint8(i * 4), G: uint8(i * 4), B: uint8(i * 4)}.Hex()
		scenarios = append(scenarios, Scenario{
			Label:      label,
			Background: Solid(label),
			Foreground: "c0",
			Size:       contrast.SizeNormal,
		})
	}

	want, err := Evaluate(p, scenarios)
	if err != nil {
		t.Fatal(err)
	}
	got, err := EvaluateParallel(context.Background(), p, scenarios, 8)
	if err != nil {
		t.Fatalf("EvaluateParallel error: %v", err)
	}
	for i := range want {
		if got[i].Scenario.Label != want[i].Scenario.Label || got[i].Verdict != want[i].Verdict {
			t.Errorf("outcome %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestEvaluateParallel_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	scenarios := make([]Scenario, 10)
	for i := range scenarios {
		scenarios[i] = Scenario{Label: fmt.Sprint(i), Background: Solid("white"), Foreground: "slate-900", Size: contrast.SizeNormal}
	}
	outcomes, _ := EvaluateParallel(ctx, testPalette(), scenarios, 2)
	if len(outcomes) != len(scenarios) {
		t.Fatalf("got %d outcomes, want %d", len(outcomes), len(scenarios))
	}
	for i, o := range outcomes {
		if o.Scenario.Label != scenarios[i].Label {
			t.Errorf("outcome %d out of order: %q", i, o.Scenario.Label)
		}
		if o.Err != nil && !errors.Is(o.Err, context.Canceled) {
			t.Errorf("outcome %d err = %v, want nil or context.Canceled", i, o.Err)
		}
	}
}

func TestEvaluateParallel_Empty(t *testing.T) {
	outcomes, err := EvaluateParallel(context.Background(), testPalette(), nil, 4)
	if err != nil || len(outcomes) != 0 {
		t.Errorf("EvaluateParallel(nil) = %v, %v", outcomes, err)
	}
}
