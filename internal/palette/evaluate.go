package palette

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/marcus/wcagcheck/internal/color"
	"github.com/marcus/wcagcheck/internal/contrast"
)

// Outcome is the result of evaluating one scenario. Err is set instead of
// Verdict when any step of the scenario failed.
type Outcome struct {
	Scenario   Scenario
	Background color.Color
	Foreground color.Color
	Verdict    contrast.Verdict
	Err        error
}

// OK reports whether the scenario evaluated without error.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// EvaluateScenario resolves both colors of s against p and classifies their contrast.
func EvaluateScenario(p Palette, s Scenario) Outcome {
	out := Outcome{Scenario: s}
	fail := func(err error) Outcome {
		out.Err = fmt.Errorf("scenario %q: %w", s.Label, err)
		return out
	}

	bg, err := p.Resolve(s.Background)
	if err != nil {
		return fail(fmt.Errorf("background: %w", err))
	}
	fg, err := p.Color(s.Foreground)
	if err != nil {
		return fail(fmt.Errorf("foreground: %w", err))
	}
	v, err := contrast.Check(fg, bg, s.Size)
	if err != nil {
		return fail(err)
	}

	out.Background = bg
	out.Foreground = fg
	out.Verdict = v
	return out
}

// Evaluate runs every scenario in order. Failed scenarios keep their slot in
// the result with Err set; the returned error joins all of them.
func Evaluate(p Palette, scenarios []Scenario) ([]Outcome, error) {
	outcomes := make([]Outcome, len(scenarios))
	for i, s := range scenarios {
		outcomes[i] = EvaluateScenario(p, s)
	}
	return outcomes, joinErrors(outcomes)
}

// EvaluateParallel is Evaluate spread across workers goroutines. Results keep
// input order. Scenarios not yet started when ctx is done report ctx.Err().
func EvaluateParallel(ctx context.Context, p Palette, scenarios []Scenario, workers int) ([]Outcome, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(scenarios) {
		workers = len(scenarios)
	}

	outcomes := make([]Outcome, len(scenarios))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = EvaluateScenario(p, scenarios[i])
			}
		}()
	}

	next := 0
dispatch:
	for ; next < len(scenarios); next++ {
		select {
		case jobs <- next:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	for i := next; i < len(scenarios); i++ {
		outcomes[i] = Outcome{
			Scenario: scenarios[i],
			Err:      fmt.Errorf("scenario %q: %w", scenarios[i].Label, ctx.Err()),
		}
	}
	return outcomes, joinErrors(outcomes)
}

func joinErrors(outcomes []Outcome) error {
	var errs []error
	for _, o := range outcomes {
		if o.Err != nil {
			errs = append(errs, o.Err)
		}
	}
	return errors.Join(errs...)
}
