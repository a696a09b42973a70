// Package provider abstracts the external text-generation services used for
// fallback classification. The engine depends only on the Provider interface;
// concrete backends register themselves by name.
package provider

import (
	"context"
	"os"
	"time"
)

// Provider sends a prompt to a text-generation service and returns the raw
// response text. Implementations must honor context cancellation and
// deadlines; this is the only component in the system permitted to perform
// outbound network I/O.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config holds the settings a provider needs to reach its backend.
type Config struct {
	Model      string
	APIKey     string
	APIBaseURL string // empty means the provider's default endpoint
	MaxTokens  int
	Timeout    time.Duration // per-call timeout; 0 uses the provider default
}

// Constructor builds a Provider from its config.
type Constructor func(cfg Config) Provider

type entry struct {
	ctor   Constructor
	envVar string
}

var registry = map[string]entry{}

// Register adds a provider constructor under the given name, with the
// environment variable its API key is resolved from.
func Register(name, apiKeyEnvVar string, ctor Constructor) {
	registry[name] = entry{ctor: ctor, envVar: apiKeyEnvVar}
}

// Get returns the constructor for the given provider name.
func Get(name string) (Constructor, bool) {
	e, ok := registry[name]
	return e.ctor, ok
}

// ResolveAPIKey returns the explicit key when set, otherwise the value of
// the provider's environment variable.
func ResolveAPIKey(name, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if e, ok := registry[name]; ok {
		return os.Getenv(e.envVar)
	}
	return ""
}

// Names returns the registered provider names.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
