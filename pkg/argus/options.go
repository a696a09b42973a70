package argus

import (
	"context"
	"time"
)

// Provider sends a prompt to a text-generation service and returns the raw
// response text. Supply one via WithProvider to replace the built-in
// anthropic/openai backends, e.g. with a deterministic stub in tests.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type options struct {
	profilePath string
	aiEnabled   bool
	apiKey      string
	concurrency int
	callTimeout time.Duration
	provider    Provider
}

// Option configures an Argus instance.
type Option func(*options)

// WithProfilePath loads the classification profile from a YAML or JSON file.
// Absent fields keep their built-in default values. Default: built-in profile.
func WithProfilePath(path string) Option {
	return func(o *options) {
		o.profilePath = path
	}
}

// WithAIEnabled enables the AI fallback for changes no rule matches.
// Requires an API key via WithAPIKey or the provider's environment
// variable. Default: disabled; unmatched changes go to manual review.
func WithAIEnabled(enabled bool) Option {
	return func(o *options) {
		o.aiEnabled = enabled
	}
}

// WithAPIKey sets the AI provider API key explicitly, overriding the
// provider's environment variable.
func WithAPIKey(key string) Option {
	return func(o *options) {
		o.apiKey = key
	}
}

// WithConcurrency sets the maximum number of concurrent AI fallback calls.
// Default: 4.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithProvider supplies a custom fallback provider instead of the profile's
// configured backend. Implies WithAIEnabled(true); no API key is required.
func WithProvider(p Provider) Option {
	return func(o *options) {
		o.provider = p
		o.aiEnabled = true
	}
}

// WithCallTimeout sets the per-request timeout for AI fallback calls.
// Default: 30s.
func WithCallTimeout(d time.Duration) Option {
	return func(o *options) {
		o.callTimeout = d
	}
}

func defaultOptions() options {
	return options{
		concurrency: 4,
		callTimeout: 30 * time.Second,
	}
}
