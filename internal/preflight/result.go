// Package preflight verifies the host before any mutation happens.
package preflight

// Status classifies a single check outcome.
type Status int

const (
	// StatusOK means the check passed.
	StatusOK Status = iota
	// StatusWarn means the check found a degraded but workable condition.
	StatusWarn
	// StatusFail means the check found a blocking condition.
	StatusFail
)

// Result describes one check outcome for rendering.
type Result struct {
	Status         Status
	CheckName      string
	Message        string
	Recommendation string
}

// HasFailure reports whether any result is fatal.
func HasFailure(results []Result) bool {
	for _, r := range results {
		if r.Status == StatusFail {
			return true
		}
	}
	return false
}

// HostProfile captures the facts gathered during preflight. It is read-only
// after Run returns and is never persisted.
type HostProfile struct {
	Arch       string `json:"arch"`
	Model      string `json:"model,omitempty"`
	MemoryMB   int    `json:"memory_mb"`
	FreeDiskGB int    `json:"free_disk_gb"`
	NetworkOK  bool   `json:"network_ok"`
}
