package model

import "time"

// Milestone names used in timelines.
const (
	MilestoneInitialNotice  = "initial_notice"
	MilestoneFinalNotice    = "final_notice"
	MilestonePostCompletion = "post_completion"
)

// Milestone is one named notification deadline, an absolute date derived
// from the reference date by a business-day offset.
type Milestone struct {
	Name string    `json:"name"`
	Date time.Time `json:"date"`

	// BusinessDays is the configured offset that produced Date.
	// Negative means before the reference date.
	BusinessDays int `json:"business_days"`
}

// Timeline is the set of notification milestones derived for one
// classification. ROUTINE changes carry no milestones; IMPACT changes carry
// the assessment flag instead of dated milestones.
type Timeline struct {
	Category           Category    `json:"category"`
	Reference          time.Time   `json:"reference"`
	Milestones         []Milestone `json:"milestones,omitempty"`
	RequiresAssessment bool        `json:"requires_assessment,omitempty"`
	Note               string      `json:"note,omitempty"`
}
