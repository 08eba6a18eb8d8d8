// Package report writes an optional JSON record of a provisioning run into
// the workspace so later debugging can see what a run found and did.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/tessellate-ai/boardstrap/internal/messages"
	"github.com/tessellate-ai/boardstrap/internal/preflight"
	"github.com/tessellate-ai/boardstrap/internal/steps"
)

// FileName is the report file written under the workspace root.
const FileName = "setup-report.json"

// Report captures one full pipeline run.
type Report struct {
	RunID      string                `json:"run_id"`
	StartedAt  time.Time             `json:"started_at"`
	FinishedAt time.Time             `json:"finished_at"`
	Host       preflight.HostProfile `json:"host"`
	Steps      []steps.StepResult    `json:"steps"`
	Success    bool                  `json:"success"`
}

// System is the minimal write interface; the scaffold System satisfies it.
type System interface {
	WriteFileAtomic(filename string, data []byte, perm os.FileMode) error
}

// New creates a report with a fresh run ID and the clock started.
func New(host preflight.HostProfile) *Report {
	return &Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Host:      host,
	}
}

// Finish stamps the end time and outcome.
func (r *Report) Finish(results []steps.StepResult, success bool) {
	r.FinishedAt = time.Now().UTC()
	r.Steps = results
	r.Success = success
}

// Write persists the report as indented JSON.
func (r *Report) Write(sys System, path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf(messages.ReportMarshalFailedFmt, err)
	}
	if err := sys.WriteFileAtomic(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf(messages.ReportWriteFailedFmt, path, err)
	}
	return nil
}
