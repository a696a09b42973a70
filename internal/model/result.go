package model

import "time"

// Result is the per-change output record: the change, its classification,
// and the derived notification timeline. Timeline is nil only for ROUTINE
// classifications, which carry no notification obligations.
type Result struct {
	Change         Change         `json:"change"`
	Classification Classification `json:"classification"`
	Timeline       *Timeline      `json:"timeline,omitempty"`
}

// Report is the full run output consumed by external reporting and audit
// collaborators.
type Report struct {
	RunID          string    `json:"run_id"`
	GeneratedAt    time.Time `json:"generated_at"`
	ProfileName    string    `json:"profile_name,omitempty"`
	ProfileVersion string    `json:"profile_version,omitempty"`
	AIEnabled      bool      `json:"ai_enabled"`
	Results        []Result  `json:"results"`
	Summary        Summary   `json:"summary"`
}
