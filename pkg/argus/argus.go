package argus

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/huntridge-labs/argus/internal/engine"
	"github.com/huntridge-labs/argus/internal/engine/fallback"
	"github.com/huntridge-labs/argus/internal/engine/matcher"
	"github.com/huntridge-labs/argus/internal/model"
	"github.com/huntridge-labs/argus/internal/profile"
	"github.com/huntridge-labs/argus/internal/provider"
	"github.com/huntridge-labs/argus/internal/timeline"

	// Register provider implementations.
	_ "github.com/huntridge-labs/argus/internal/provider/anthropic"
	_ "github.com/huntridge-labs/argus/internal/provider/openai"
)

// Argus classifies infrastructure-as-code changes against an ordered rule
// profile and derives notification deadlines. Safe for concurrent use.
type Argus struct {
	engine *engine.Engine
	prof   profile.Profile
}

// New creates an Argus instance. With no options it uses the built-in
// profile with the AI fallback disabled.
func New(opts ...Option) (*Argus, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	prof := profile.Default()
	if o.profilePath != "" {
		loaded, err := profile.Load(o.profilePath)
		if err != nil {
			return nil, fmt.Errorf("argus: %w", err)
		}
		prof = loaded
	}

	m, err := matcher.Compile(prof.Rules)
	if err != nil {
		return nil, fmt.Errorf("argus: %w", err)
	}

	var fb *fallback.Classifier
	switch {
	case o.provider != nil:
		fb = fallback.New(prof.AIFallback, o.provider)
	case o.aiEnabled && prof.AIFallback.Enabled:
		name := prof.AIFallback.Provider
		ctor, ok := provider.Get(name)
		if !ok {
			return nil, fmt.Errorf("argus: unknown AI provider %q", name)
		}
		key := provider.ResolveAPIKey(name, o.apiKey)
		if key == "" {
			return nil, fmt.Errorf("argus: AI fallback enabled but no API key for provider %q", name)
		}
		p := ctor(provider.Config{
			Model:      prof.AIFallback.Model,
			APIKey:     key,
			APIBaseURL: prof.AIFallback.APIBaseURL,
			MaxTokens:  prof.AIFallback.MaxTokens,
			Timeout:    o.callTimeout,
		})
		fb = fallback.New(prof.AIFallback, p)
	default:
		prof.AIFallback.Enabled = false
	}

	eng := engine.New(m, fb, engine.WithFallbackWorkers(o.concurrency))
	return &Argus{engine: eng, prof: prof}, nil
}

// Classify classifies a single change. The timeline, when present, is
// anchored at the current date.
func (a *Argus) Classify(ctx context.Context, change Change) Result {
	results := a.ClassifyAll(ctx, []Change{change})
	return results[0]
}

// ClassifyAll classifies a batch of changes, preserving input order.
// Rule matches are resolved inline; unmatched changes go through the AI
// fallback concurrently when it is enabled.
func (a *Argus) ClassifyAll(ctx context.Context, changes []Change) []Result {
	internal := make([]model.Change, len(changes))
	for i, c := range changes {
		internal[i] = changeToModel(c)
	}

	classifications := a.engine.ClassifyAll(ctx, internal)
	reference := today()

	results := make([]Result, len(changes))
	for i, cls := range classifications {
		results[i] = Result{
			Change:         changes[i],
			Classification: classificationFrom(cls),
		}
		if cls.Category != model.Routine {
			tl := timeline.Compute(cls.Category, reference, a.prof.Notifications)
			pub := timelineFrom(tl)
			results[i].Timeline = &pub
		}
	}
	return results
}

// Timeline computes notification deadlines for a category anchored at the
// given reference date. Returns nil for ROUTINE and unknown categories.
func (a *Argus) Timeline(category string, reference time.Time) *Timeline {
	cat := normalizeCategory(category)
	if cat == model.Routine || (!cat.Valid() && cat != model.ManualReview) {
		return nil
	}
	tl := timeline.Compute(cat, reference, a.prof.Notifications)
	pub := timelineFrom(tl)
	return &pub
}

// Summarize aggregates category counts across results.
func Summarize(results []Result) Summary {
	var s Summary
	highest := -1
	for _, r := range results {
		cat := normalizeCategory(r.Classification.Category)
		switch cat {
		case model.Routine:
			s.Routine++
		case model.Adaptive:
			s.Adaptive++
		case model.Transformative:
			s.Transformative++
		case model.Impact:
			s.Impact++
		default:
			// Unknown categories land in the manual review bucket so
			// they are never silently dropped from the totals.
			s.ManualReview++
		}
		if sev := cat.Severity(); sev > highest {
			highest = sev
			s.HighestSeverity = string(cat)
		}
	}
	return s
}

func normalizeCategory(s string) model.Category {
	return model.Category(strings.ToUpper(strings.TrimSpace(s)))
}

func today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

func changeToModel(c Change) model.Change {
	return model.Change{
		ResourceType:      c.ResourceType,
		ResourceName:      c.ResourceName,
		Operation:         c.Operation,
		AttributesChanged: c.AttributesChanged,
		DiffText:          c.DiffText,
		SourceFile:        c.SourceFile,
	}
}

func classificationFrom(c model.Classification) Classification {
	return Classification{
		ID:               c.ID,
		Category:         string(c.Category),
		Method:           c.Method,
		Confidence:       c.Confidence,
		Reasoning:        c.Reasoning,
		MatchedRule:      c.MatchedRule,
		ReportedCategory: string(c.ReportedCategory),
	}
}

func timelineFrom(t model.Timeline) Timeline {
	milestones := make([]Milestone, len(t.Milestones))
	for i, m := range t.Milestones {
		milestones[i] = Milestone{
			Name:         m.Name,
			Date:         m.Date,
			BusinessDays: m.BusinessDays,
		}
	}
	if len(milestones) == 0 {
		milestones = nil
	}
	return Timeline{
		Category:           string(t.Category),
		Reference:          t.Reference,
		Milestones:         milestones,
		RequiresAssessment: t.RequiresAssessment,
		Note:               t.Note,
	}
}
