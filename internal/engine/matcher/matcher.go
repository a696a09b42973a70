// Package matcher implements rule-based classification of infrastructure
// changes. Rules are compiled once from a validated profile and evaluated as
// a single flattened pass in ascending category severity: the first rule
// whose criteria all match wins, across the whole rule set. A broad low-tier
// rule therefore masks later high-tier rules; this is the documented contract
// and is resolved by careful rule authoring, not by the matcher.
package matcher

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/huntridge-labs/argus/internal/model"
	"github.com/huntridge-labs/argus/internal/profile"
)

// compiledRule is one rule with its regular expressions pre-compiled.
// Expressions match case-insensitively unless the pattern re-enables case
// sensitivity with inline flags.
type compiledRule struct {
	category   model.Category
	spec       profile.Rule
	pattern    *regexp.Regexp // nil when criterion absent
	resource   *regexp.Regexp
	attribute  *regexp.Regexp
	operations []string // lowercased; empty when criterion absent
}

// Matcher evaluates changes against a compiled, ordered rule set.
// Pure and stateless after compilation; safe for concurrent use.
type Matcher struct {
	rules []compiledRule
}

// Compile flattens the profile's rules into evaluation order and compiles
// their expressions. The profile must already be validated; a compile failure
// here is reported as a configuration error.
func Compile(rules profile.Rules) (*Matcher, error) {
	m := &Matcher{}
	for _, cat := range model.Categories {
		for i, spec := range rules.ForCategory(cat) {
			cr, err := compileRule(cat, spec)
			if err != nil {
				return nil, fmt.Errorf("rules.%s[%d]: %w", strings.ToLower(string(cat)), i, err)
			}
			m.rules = append(m.rules, cr)
		}
	}
	return m, nil
}

func compileRule(cat model.Category, spec profile.Rule) (compiledRule, error) {
	cr := compiledRule{category: cat, spec: spec}

	var err error
	if spec.Pattern != "" {
		if cr.pattern, err = regexp.Compile("(?i)" + spec.Pattern); err != nil {
			return cr, fmt.Errorf("pattern: %w", err)
		}
	}
	if spec.Resource != "" {
		if cr.resource, err = regexp.Compile("(?i)" + spec.Resource); err != nil {
			return cr, fmt.Errorf("resource: %w", err)
		}
	}
	if spec.Attribute != "" {
		if cr.attribute, err = regexp.Compile("(?i)" + spec.Attribute); err != nil {
			return cr, fmt.Errorf("attribute: %w", err)
		}
	}
	if spec.Operation != "" {
		for _, op := range strings.Split(spec.Operation, "|") {
			if op = strings.ToLower(strings.TrimSpace(op)); op != "" {
				cr.operations = append(cr.operations, op)
			}
		}
	}
	return cr, nil
}

// Len returns the number of compiled rules.
func (m *Matcher) Len() int { return len(m.rules) }

// Match evaluates the change against the ordered rule set and returns the
// classification for the first matching rule, or nil when no rule matches.
// Rule matches always carry confidence 1.0.
func (m *Matcher) Match(change model.Change) *model.Classification {
	for _, rule := range m.rules {
		if rule.matches(change) {
			reasoning := rule.spec.Description
			if reasoning == "" {
				reasoning = "Rule matched"
			}
			return &model.Classification{
				Category:    rule.category,
				Method:      model.MethodRule,
				Confidence:  1.0,
				Reasoning:   reasoning,
				MatchedRule: rule.path(),
			}
		}
	}
	return nil
}

// matches reports whether every present criterion matches the change.
func (r compiledRule) matches(c model.Change) bool {
	if r.pattern != nil {
		text := c.Addr() + " " + strings.Join(c.AttributesChanged, " ") + " " + c.DiffText
		if !r.pattern.MatchString(text) {
			return false
		}
	}

	if r.resource != nil && !r.matchesResource(c) {
		return false
	}

	if r.attribute != nil {
		matched := r.attribute.MatchString(c.DiffText)
		for _, attr := range c.AttributesChanged {
			if matched {
				break
			}
			matched = r.attribute.MatchString(attr)
		}
		if !matched {
			return false
		}
	}

	if len(r.operations) > 0 {
		op := strings.ToLower(c.Operation)
		found := false
		for _, allowed := range r.operations {
			if op == allowed {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// matchesResource tests the resource expression against type.name, and —
// when the expression addresses an attribute (two or more dots) — against
// type.name.attr for each changed attribute.
func (r compiledRule) matchesResource(c model.Change) bool {
	addr := c.Addr()
	if r.resource.MatchString(addr) {
		return true
	}
	if strings.Count(r.spec.Resource, ".") < 2 {
		return false
	}
	for _, attr := range c.AttributesChanged {
		if r.resource.MatchString(addr + "." + attr) {
			return true
		}
	}
	return false
}

// path formats the rule for the audit trail: category plus its criteria.
func (r compiledRule) path() string {
	parts := []string{strings.ToLower(string(r.category))}
	if r.spec.Resource != "" {
		parts = append(parts, r.spec.Resource)
	}
	if r.spec.Pattern != "" {
		parts = append(parts, "pattern:"+r.spec.Pattern)
	}
	if r.spec.Attribute != "" {
		parts = append(parts, "attr:"+r.spec.Attribute)
	}
	return strings.Join(parts, ".")
}
