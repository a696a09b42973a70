package profile

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/huntridge-labs/argus/internal/model"
)

var validProviders = map[string]bool{"anthropic": true, "openai": true}
var validImpactLevels = map[string]bool{"Low": true, "Moderate": true, "High": true}

// Validate checks the profile's structure and compiles every rule regular
// expression, so malformed rules surface at load time rather than during
// matching. All problems are collected and reported together.
func (p Profile) Validate() error {
	var errs []string

	if p.Version == "" {
		errs = append(errs, "version: required field missing")
	}

	if p.ImpactLevel != "" && !validImpactLevels[p.ImpactLevel] {
		errs = append(errs, fmt.Sprintf("impact_level: %q is not valid (valid: High, Low, Moderate)", p.ImpactLevel))
	}

	total := 0
	for _, cat := range model.Categories {
		rules := p.Rules.ForCategory(cat)
		total += len(rules)
		prefix := "rules." + strings.ToLower(string(cat))
		for i, rule := range rules {
			errs = append(errs, validateRule(rule, fmt.Sprintf("%s[%d]", prefix, i))...)
		}
	}
	if total == 0 {
		errs = append(errs, "rules: must contain at least one rule")
	}

	errs = append(errs, p.AIFallback.validate()...)
	errs = append(errs, p.Notifications.validate()...)

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func validateRule(rule Rule, path string) []string {
	var errs []string

	if rule.Description == "" {
		errs = append(errs, path+".description: required field missing")
	}
	if rule.Pattern == "" && rule.Resource == "" && rule.Attribute == "" {
		errs = append(errs, path+": must have at least one of pattern, resource, or attribute")
	}

	for _, expr := range []struct{ field, val string }{
		{"pattern", rule.Pattern},
		{"resource", rule.Resource},
		{"attribute", rule.Attribute},
	} {
		if expr.val == "" {
			continue
		}
		if _, err := regexp.Compile("(?i)" + expr.val); err != nil {
			errs = append(errs, fmt.Sprintf("%s.%s: invalid regular expression: %v", path, expr.field, err))
		}
	}
	return errs
}

func (a AIFallback) validate() []string {
	var errs []string
	if a.Provider != "" && !validProviders[a.Provider] {
		errs = append(errs, fmt.Sprintf("ai_fallback.provider: %q is not valid (valid: anthropic, openai)", a.Provider))
	}
	if a.ConfidenceThreshold < 0 || a.ConfidenceThreshold > 1 {
		errs = append(errs, "ai_fallback.confidence_threshold: must be between 0.0 and 1.0")
	}
	if a.MaxTokens < 1 {
		errs = append(errs, "ai_fallback.max_tokens: must be >= 1")
	}
	if a.MaxDiffChars < 1 {
		errs = append(errs, "ai_fallback.max_diff_chars: must be >= 1")
	}
	return errs
}

func (n Notifications) validate() []string {
	var errs []string
	if n.Adaptive.PostCompletionDays < 0 {
		errs = append(errs, "notifications.adaptive.post_completion_days: must be >= 0")
	}
	if n.Transformative.InitialNoticeDays < 0 {
		errs = append(errs, "notifications.transformative.initial_notice_days: must be >= 0")
	}
	if n.Transformative.FinalNoticeDays < 0 {
		errs = append(errs, "notifications.transformative.final_notice_days: must be >= 0")
	}
	if n.Transformative.PostCompletionDays < 0 {
		errs = append(errs, "notifications.transformative.post_completion_days: must be >= 0")
	}
	return errs
}
