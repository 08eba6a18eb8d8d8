// Package steps defines the ordered, idempotent installation sequence.
package steps

import "context"

// Step is one unit of installation work. Probe reports whether the desired
// end-state already holds; Install brings it about. Steps never consume
// another step's output.
type Step interface {
	// Name identifies the step in logs and reports.
	Name() string
	// Probe returns whether the step is already satisfied and a short detail
	// string for the log line. An error means the probe itself could not run.
	Probe(ctx context.Context) (bool, string, error)
	// Install performs the installation. Called only when Probe returned false.
	Install(ctx context.Context) error
}

// Outcome is the tri-state result of running one step.
type Outcome string

const (
	// OutcomeSkipped means the probe found the end-state already present.
	OutcomeSkipped Outcome = "skipped"
	// OutcomePerformed means the install action ran and succeeded.
	OutcomePerformed Outcome = "performed"
	// OutcomeFailed means the install action failed; the pipeline stops.
	OutcomeFailed Outcome = "failed"
)

// StepResult records what happened to one step.
type StepResult struct {
	Name       string  `json:"name"`
	Outcome    Outcome `json:"outcome"`
	Detail     string  `json:"detail,omitempty"`
	DurationMS int64   `json:"duration_ms"`
}
