// Package engine orchestrates change classification: a deterministic rule
// pass first, then the AI fallback for unmatched changes, with confidence
// gating applied by the fallback classifier. Every change yields exactly one
// classification; the engine never aborts a run because one change is hard
// to classify.
package engine

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/huntridge-labs/argus/internal/engine/fallback"
	"github.com/huntridge-labs/argus/internal/engine/matcher"
	"github.com/huntridge-labs/argus/internal/model"
)

const defaultFallbackWorkers = 4

// Engine classifies changes against a compiled profile.
type Engine struct {
	matcher         *matcher.Matcher
	fallback        *fallback.Classifier // nil when AI fallback is disabled
	fallbackWorkers int
}

// Option configures an Engine.
type Option func(*Engine)

// WithFallbackWorkers bounds the number of concurrent fallback calls.
// Default: 4.
func WithFallbackWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.fallbackWorkers = n
		}
	}
}

// New creates an Engine. Pass a nil fallback classifier to disable the AI
// stage; unmatched changes then resolve to MANUAL_REVIEW.
func New(m *matcher.Matcher, fb *fallback.Classifier, opts ...Option) *Engine {
	e := &Engine{
		matcher:         m,
		fallback:        fb,
		fallbackWorkers: defaultFallbackWorkers,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ClassifyAll classifies every change, returning one classification per
// change in input order. Rule evaluation is synchronous; fallback calls for
// unmatched changes run concurrently under the worker bound and rejoin by
// index. If the context is cancelled mid-run, changes still pending are
// marked MANUAL_REVIEW with a cancellation reasoning — partial results are
// never dropped.
func (e *Engine) ClassifyAll(ctx context.Context, changes []model.Change) []model.Classification {
	results := make([]model.Classification, len(changes))

	var pending []int
	for i, change := range changes {
		if cls := e.matcher.Match(change); cls != nil {
			results[i] = *cls
			continue
		}
		if e.fallback == nil {
			results[i] = model.Classification{
				Category:   model.ManualReview,
				Method:     model.MethodUnmatched,
				Confidence: 0.0,
				Reasoning:  "no rule matched, AI fallback disabled",
			}
			continue
		}
		pending = append(pending, i)
	}

	if len(pending) > 0 {
		e.classifyFallback(ctx, changes, results, pending)
	}

	for i := range results {
		results[i].ID = uuid.NewString()
	}
	return results
}

// classifyFallback runs fallback classification for the given indexes with
// bounded concurrency. Each worker checks for cancellation before starting a
// call; the fallback classifier itself maps an interrupted in-flight call to
// MANUAL_REVIEW through its normal failure path.
func (e *Engine) classifyFallback(ctx context.Context, changes []model.Change, results []model.Classification, pending []int) {
	workers := e.fallbackWorkers
	if workers > len(pending) {
		workers = len(pending)
	}

	slog.Debug("running AI fallback", "changes", len(pending), "workers", workers)

	idxCh := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range idxCh {
				if ctx.Err() != nil {
					results[i] = cancelled()
					continue
				}
				slog.Debug("AI fallback", "resource", changes[i].Addr())
				results[i] = e.fallback.Classify(ctx, changes[i])
			}
		}()
	}

	for _, i := range pending {
		idxCh <- i
	}
	close(idxCh)
	wg.Wait()
}

func cancelled() model.Classification {
	return model.Classification{
		Category:   model.ManualReview,
		Method:     model.MethodAI,
		Confidence: 0.0,
		Reasoning:  "classification cancelled before completion",
	}
}

// Summarize computes per-category counts and the highest automatic severity
// observed. MANUAL_REVIEW is counted but never escalates the severity.
func Summarize(classifications []model.Classification) model.Summary {
	var s model.Summary
	highest := -1
	for _, c := range classifications {
		switch c.Category {
		case model.Routine:
			s.Routine++
		case model.Adaptive:
			s.Adaptive++
		case model.Transformative:
			s.Transformative++
		case model.Impact:
			s.Impact++
		default:
			s.ManualReview++
		}
		if sev := c.Category.Severity(); sev > highest {
			highest = sev
			s.HighestSeverity = c.Category
		}
	}
	return s
}
