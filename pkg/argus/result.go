package argus

import "time"

// Change is one infrastructure resource change to classify.
type Change struct {
	ResourceType      string   `json:"resource_type"`
	ResourceName      string   `json:"resource_name"`
	Operation         string   `json:"operation"` // create, modify, delete
	AttributesChanged []string `json:"attributes_changed,omitempty"`
	DiffText          string   `json:"diff_text,omitempty"`
	SourceFile        string   `json:"source_file,omitempty"`
}

// Classification is the category verdict for a single change.
// These are the stable public types — internal representations may evolve
// independently without breaking consumers.
type Classification struct {
	ID               string  `json:"id"`
	Category         string  `json:"category"` // ROUTINE, ADAPTIVE, TRANSFORMATIVE, IMPACT, MANUAL_REVIEW
	Method           string  `json:"method"`   // rule-based, ai-fallback, unmatched
	Confidence       float64 `json:"confidence"`
	Reasoning        string  `json:"reasoning,omitempty"`
	MatchedRule      string  `json:"matched_rule,omitempty"`
	ReportedCategory string  `json:"reported_category,omitempty"` // AI verdict preserved through a low-confidence demotion
}

// Milestone is one dated notification deadline.
type Milestone struct {
	Name         string    `json:"name"` // initial_notice, final_notice, post_completion
	Date         time.Time `json:"date"`
	BusinessDays int       `json:"business_days"`
}

// Timeline holds the notification deadlines derived from a classification.
type Timeline struct {
	Category           string      `json:"category"`
	Reference          time.Time   `json:"reference"`
	Milestones         []Milestone `json:"milestones,omitempty"`
	RequiresAssessment bool        `json:"requires_assessment,omitempty"`
	Note               string      `json:"note,omitempty"`
}

// Result pairs a change with its classification and, for non-ROUTINE
// categories, its notification timeline.
type Result struct {
	Change         Change         `json:"change"`
	Classification Classification `json:"classification"`
	Timeline       *Timeline      `json:"timeline,omitempty"`
}

// Summary aggregates category counts across a classification run.
type Summary struct {
	Routine         int    `json:"routine"`
	Adaptive        int    `json:"adaptive"`
	Transformative  int    `json:"transformative"`
	Impact          int    `json:"impact"`
	ManualReview    int    `json:"manual_review"`
	HighestSeverity string `json:"highest_severity,omitempty"`
}

// Total returns the number of classified changes in the summary.
func (s Summary) Total() int {
	return s.Routine + s.Adaptive + s.Transformative + s.Impact + s.ManualReview
}
