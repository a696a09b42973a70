package model

import (
	"fmt"
	"strings"
)

// Category is a compliance severity tier for an infrastructure change.
// The four automatic categories form a strict severity chain; ManualReview
// sits outside it and marks changes no rule or model could confidently place.
type Category string

const (
	Routine        Category = "ROUTINE"
	Adaptive       Category = "ADAPTIVE"
	Transformative Category = "TRANSFORMATIVE"
	Impact         Category = "IMPACT"
	ManualReview   Category = "MANUAL_REVIEW"
)

// Categories lists the automatic categories in ascending severity order.
// Rule evaluation and severity summarization both follow this order.
var Categories = []Category{Routine, Adaptive, Transformative, Impact}

// Severity returns the position of the category in the escalation chain.
// ManualReview (and anything unknown) returns -1: it requires human
// attention but never escalates the automatic severity summary.
func (c Category) Severity() int {
	switch c {
	case Routine:
		return 0
	case Adaptive:
		return 1
	case Transformative:
		return 2
	case Impact:
		return 3
	default:
		return -1
	}
}

// Valid reports whether c is one of the four automatic categories.
func (c Category) Valid() bool {
	return c.Severity() >= 0
}

// ParseCategory normalizes a string to a Category.
// Returns an error for anything outside the four automatic tiers.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// Classification methods, recorded for the audit trail.
const (
	MethodRule      = "rule-based"
	MethodAI        = "ai-fallback"
	MethodUnmatched = "unmatched"
)

// Classification is the verdict for one Change. Created once, never mutated.
type Classification struct {
	ID         string   `json:"id"` // unique record ID for audit cross-referencing
	Category   Category `json:"category"`
	Method     string   `json:"method"`
	Confidence float64  `json:"confidence"`
	Reasoning  string   `json:"reasoning"`

	// MatchedRule is the rule path (category.criteria…) when Method is
	// rule-based, empty otherwise.
	MatchedRule string `json:"matched_rule,omitempty"`

	// ReportedCategory preserves the model's verdict when confidence gating
	// downgraded the classification to MANUAL_REVIEW.
	ReportedCategory Category `json:"reported_category,omitempty"`
}

// Summary aggregates a run's classifications: per-category counts and the
// highest automatic severity observed.
type Summary struct {
	Routine         int      `json:"routine"`
	Adaptive        int      `json:"adaptive"`
	Transformative  int      `json:"transformative"`
	Impact          int      `json:"impact"`
	ManualReview    int      `json:"manual_review"`
	HighestSeverity Category `json:"highest_severity,omitempty"` // empty when no change classified automatically
}

// Count returns the tally for the given category.
func (s Summary) Count(c Category) int {
	switch c {
	case Routine:
		return s.Routine
	case Adaptive:
		return s.Adaptive
	case Transformative:
		return s.Transformative
	case Impact:
		return s.Impact
	case ManualReview:
		return s.ManualReview
	}
	return 0
}

// Total returns the number of classifications summarized.
func (s Summary) Total() int {
	return s.Routine + s.Adaptive + s.Transformative + s.Impact + s.ManualReview
}
