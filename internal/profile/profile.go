// Package profile defines the classification profile document: the ordered
// rule sets, AI-fallback settings, and notification-timeline parameters that
// drive a classification run. Profiles are loaded once, validated fail-fast,
// and read-only afterwards.
package profile

import "github.com/huntridge-labs/argus/internal/model"

// Rule is one matching criterion set belonging to one category. A rule with
// multiple criteria requires all present criteria to match.
type Rule struct {
	Pattern     string `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Resource    string `yaml:"resource,omitempty" json:"resource,omitempty"`
	Attribute   string `yaml:"attribute,omitempty" json:"attribute,omitempty"`
	Operation   string `yaml:"operation,omitempty" json:"operation,omitempty"` // exact value or pipe-delimited set
	Description string `yaml:"description" json:"description"`
}

// Rules holds the ordered rule list per category. Evaluation order is
// routine → adaptive → transformative → impact, list order within each.
type Rules struct {
	Routine        []Rule `yaml:"routine,omitempty" json:"routine,omitempty"`
	Adaptive       []Rule `yaml:"adaptive,omitempty" json:"adaptive,omitempty"`
	Transformative []Rule `yaml:"transformative,omitempty" json:"transformative,omitempty"`
	Impact         []Rule `yaml:"impact,omitempty" json:"impact,omitempty"`
}

// Count returns the total number of rules across all categories.
func (r Rules) Count() int {
	return len(r.Routine) + len(r.Adaptive) + len(r.Transformative) + len(r.Impact)
}

// ForCategory returns the rule list for an automatic category.
func (r Rules) ForCategory(c model.Category) []Rule {
	switch c {
	case model.Routine:
		return r.Routine
	case model.Adaptive:
		return r.Adaptive
	case model.Transformative:
		return r.Transformative
	case model.Impact:
		return r.Impact
	}
	return nil
}

// AIFallback configures the model-backed classifier used when no rule matches.
type AIFallback struct {
	Enabled             bool    `yaml:"enabled" json:"enabled"`
	Provider            string  `yaml:"provider,omitempty" json:"provider,omitempty"`
	Model               string  `yaml:"model,omitempty" json:"model,omitempty"`
	APIBaseURL          string  `yaml:"api_base_url,omitempty" json:"api_base_url,omitempty"`
	ConfidenceThreshold float64 `yaml:"confidence_threshold" json:"confidence_threshold"`
	MaxTokens           int     `yaml:"max_tokens,omitempty" json:"max_tokens,omitempty"`
	MaxDiffChars        int     `yaml:"max_diff_chars,omitempty" json:"max_diff_chars,omitempty"`
	SystemPrompt        string  `yaml:"system_prompt,omitempty" json:"system_prompt,omitempty"`
	UserPromptTemplate  string  `yaml:"user_prompt_template,omitempty" json:"user_prompt_template,omitempty"`
}

// AdaptiveNotifications configures the single post-completion deadline for
// adaptive changes.
type AdaptiveNotifications struct {
	PostCompletionDays int    `yaml:"post_completion_days" json:"post_completion_days"`
	Description        string `yaml:"description,omitempty" json:"description,omitempty"`
}

// TransformativeNotifications configures the notice ladder for
// transformative changes.
type TransformativeNotifications struct {
	InitialNoticeDays      int    `yaml:"initial_notice_days" json:"initial_notice_days"`
	FinalNoticeDays        int    `yaml:"final_notice_days" json:"final_notice_days"`
	PostCompletionRequired bool   `yaml:"post_completion_required" json:"post_completion_required"`
	PostCompletionDays     int    `yaml:"post_completion_days,omitempty" json:"post_completion_days,omitempty"`
	Description            string `yaml:"description,omitempty" json:"description,omitempty"`
}

// ImpactNotifications configures the impact-category process flag.
type ImpactNotifications struct {
	RequiresNewAssessment bool   `yaml:"requires_new_assessment" json:"requires_new_assessment"`
	Description           string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Notifications holds per-category timeline parameters.
type Notifications struct {
	Adaptive       AdaptiveNotifications       `yaml:"adaptive" json:"adaptive"`
	Transformative TransformativeNotifications `yaml:"transformative" json:"transformative"`
	Impact         ImpactNotifications         `yaml:"impact" json:"impact"`
}

// Profile is the full classification profile document.
type Profile struct {
	Version             string        `yaml:"version" json:"version"`
	Name                string        `yaml:"name,omitempty" json:"name,omitempty"`
	Description         string        `yaml:"description,omitempty" json:"description,omitempty"`
	ComplianceFramework string        `yaml:"compliance_framework,omitempty" json:"compliance_framework,omitempty"`
	ImpactLevel         string        `yaml:"impact_level,omitempty" json:"impact_level,omitempty"`
	Rules               Rules         `yaml:"rules" json:"rules"`
	AIFallback          AIFallback    `yaml:"ai_fallback" json:"ai_fallback"`
	Notifications       Notifications `yaml:"notifications" json:"notifications"`
}
