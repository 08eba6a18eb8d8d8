package steps

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/tessellate-ai/boardstrap/internal/messages"
)

// Runner drives an ordered step list: probe, then install when unsatisfied.
// The first install failure is fatal; there is no retry and no rollback of
// steps that already completed.
type Runner struct {
	Out io.Writer
}

// Run executes the steps in order. The returned results cover every step that
// ran, including a trailing failed entry when err is non-nil.
func (r Runner) Run(ctx context.Context, list []Step) ([]StepResult, error) {
	results := make([]StepResult, 0, len(list))
	for i, step := range list {
		_, _ = fmt.Fprintf(r.Out, messages.StepRunningFmt, i+1, len(list), step.Name())

		start := time.Now()
		satisfied, detail, err := step.Probe(ctx)
		if err != nil {
			results = append(results, StepResult{
				Name:       step.Name(),
				Outcome:    OutcomeFailed,
				Detail:     err.Error(),
				DurationMS: time.Since(start).Milliseconds(),
			})
			return results, fmt.Errorf(messages.StepProbeFailedFmt, step.Name(), err)
		}
		if satisfied {
			_, _ = fmt.Fprintf(r.Out, messages.StepSkippedFmt, detail)
			results = append(results, StepResult{
				Name:       step.Name(),
				Outcome:    OutcomeSkipped,
				Detail:     detail,
				DurationMS: time.Since(start).Milliseconds(),
			})
			continue
		}

		if err := step.Install(ctx); err != nil {
			results = append(results, StepResult{
				Name:       step.Name(),
				Outcome:    OutcomeFailed,
				Detail:     err.Error(),
				DurationMS: time.Since(start).Milliseconds(),
			})
			return results, fmt.Errorf(messages.StepFailedFmt, step.Name(), err)
		}
		_, _ = fmt.Fprintf(r.Out, messages.StepPerformedFmt, step.Name())
		results = append(results, StepResult{
			Name:       step.Name(),
			Outcome:    OutcomePerformed,
			DurationMS: time.Since(start).Milliseconds(),
		})
	}
	return results, nil
}

// Performed counts results with OutcomePerformed.
func Performed(results []StepResult) int {
	n := 0
	for _, r := range results {
		if r.Outcome == OutcomePerformed {
			n++
		}
	}
	return n
}
