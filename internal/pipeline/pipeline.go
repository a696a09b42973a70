// Package pipeline connects the classification engine, the timeline
// calculator, and an output into a single run over a set of changes.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/huntridge-labs/argus/internal/engine"
	"github.com/huntridge-labs/argus/internal/model"
	"github.com/huntridge-labs/argus/internal/output"
	"github.com/huntridge-labs/argus/internal/profile"
	"github.com/huntridge-labs/argus/internal/timeline"
)

// Pipeline classifies changes, derives their notification timelines, and
// writes one result record per change to the configured output.
type Pipeline struct {
	engine *engine.Engine
	prof   profile.Profile
	out    output.Output
}

// New creates a Pipeline from the given components.
func New(eng *engine.Engine, prof profile.Profile, out output.Output) *Pipeline {
	return &Pipeline{
		engine: eng,
		prof:   prof,
		out:    out,
	}
}

// Run classifies all changes against the profile, attaches a timeline to
// every non-ROUTINE classification anchored at the reference date, writes
// each result to the output, and returns the full report. Classification
// never fails per-change; only output errors abort the run.
func (p *Pipeline) Run(ctx context.Context, changes []model.Change, reference time.Time) (model.Report, error) {
	classifications := p.engine.ClassifyAll(ctx, changes)

	results := make([]model.Result, len(changes))
	for i, cls := range classifications {
		results[i] = model.Result{
			Change:         changes[i],
			Classification: cls,
		}
		if cls.Category != model.Routine {
			tl := timeline.Compute(cls.Category, reference, p.prof.Notifications)
			results[i].Timeline = &tl
		}
		if err := p.out.Write(ctx, results[i]); err != nil {
			return model.Report{}, fmt.Errorf("pipeline output: %w", err)
		}
	}

	return model.Report{
		RunID:          uuid.NewString(),
		GeneratedAt:    time.Now().UTC(),
		ProfileName:    p.prof.Name,
		ProfileVersion: p.prof.Version,
		AIEnabled:      p.prof.AIFallback.Enabled,
		Results:        results,
		Summary:        engine.Summarize(classifications),
	}, nil
}

// Close shuts down the output.
func (p *Pipeline) Close() error {
	return p.out.Close()
}
