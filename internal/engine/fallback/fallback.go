// Package fallback implements the AI-backed classifier invoked when no rule
// matches a change. It builds a bounded prompt, sends it through an injected
// provider, and parses the structured verdict. Every failure mode — transport
// error, timeout, malformed response, unknown category, sub-threshold
// confidence — resolves locally to MANUAL_REVIEW; Classify never returns an
// error to the caller.
package fallback

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/huntridge-labs/argus/internal/model"
	"github.com/huntridge-labs/argus/internal/profile"
	"github.com/huntridge-labs/argus/internal/provider"
)

const defaultMaxDiffChars = 1000

// Classifier classifies changes through an external text-generation service.
type Classifier struct {
	cfg      profile.AIFallback
	provider provider.Provider
}

// New creates a Classifier with the given settings and provider. The provider
// is injected so tests can substitute a deterministic stub.
func New(cfg profile.AIFallback, p provider.Provider) *Classifier {
	return &Classifier{cfg: cfg, provider: p}
}

// verdict is the JSON object the model is instructed to return.
type verdict struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// Classify sends the change to the provider and returns a classification.
// The result is always valid: a recognized category above the confidence
// threshold, or MANUAL_REVIEW with a reasoning explaining why.
func (c *Classifier) Classify(ctx context.Context, change model.Change) model.Classification {
	prompt := c.BuildPrompt(change)

	raw, err := c.provider.Complete(ctx, prompt)
	if err != nil {
		return manualReview(fmt.Sprintf("AI error: %v", err))
	}

	var v verdict
	if err := json.Unmarshal([]byte(extractJSON(raw)), &v); err != nil {
		return manualReview(fmt.Sprintf("AI returned malformed response: %v", err))
	}

	category, err := model.ParseCategory(v.Category)
	if err != nil {
		return manualReview(fmt.Sprintf("AI returned invalid category %q", v.Category))
	}

	reasoning := v.Reasoning
	if reasoning == "" {
		reasoning = "No reasoning provided"
	}

	if v.Confidence < c.cfg.ConfidenceThreshold {
		// Downgrade but keep the reported verdict for the audit trail.
		return model.Classification{
			Category:         model.ManualReview,
			Method:           model.MethodAI,
			Confidence:       v.Confidence,
			Reasoning:        fmt.Sprintf("Low confidence (%.2f < %.2f): %s", v.Confidence, c.cfg.ConfidenceThreshold, reasoning),
			ReportedCategory: category,
		}
	}

	return model.Classification{
		Category:   category,
		Method:     model.MethodAI,
		Confidence: v.Confidence,
		Reasoning:  reasoning,
	}
}

// BuildPrompt assembles the system instruction and the user template with
// the change's fields substituted. The diff is truncated to MaxDiffChars.
func (c *Classifier) BuildPrompt(change model.Change) string {
	maxChars := c.cfg.MaxDiffChars
	if maxChars <= 0 {
		maxChars = defaultMaxDiffChars
	}
	snippet := change.DiffText
	if len(snippet) > maxChars {
		cut := maxChars
		// Back up to a rune boundary so the cut never splits a
		// multi-byte character.
		for cut > 0 && !utf8.RuneStart(snippet[cut]) {
			cut--
		}
		snippet = snippet[:cut]
	}

	r := strings.NewReplacer(
		"{resource_type}", orUnknown(change.ResourceType, "unknown"),
		"{resource_name}", orUnknown(change.ResourceName, "unnamed"),
		"{operation}", orUnknown(change.Operation, "unknown"),
		"{attributes}", strings.Join(change.AttributesChanged, ", "),
		"{diff_snippet}", snippet,
	)
	user := r.Replace(c.cfg.UserPromptTemplate)

	if c.cfg.SystemPrompt == "" {
		return user
	}
	return c.cfg.SystemPrompt + "\n\n" + user
}

func orUnknown(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// extractJSON trims surrounding prose and markdown code fences, returning the
// first top-level JSON object in the response. Models occasionally wrap the
// requested JSON despite instructions.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return strings.TrimSpace(s)
}

func manualReview(reasoning string) model.Classification {
	return model.Classification{
		Category:   model.ManualReview,
		Method:     model.MethodAI,
		Confidence: 0.0,
		Reasoning:  reasoning,
	}
}
