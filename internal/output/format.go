package output

import "github.com/huntridge-labs/argus/internal/model"

// Verbosity controls how much detail is retained in emitted records.
type Verbosity int

const (
	Minimal  Verbosity = iota // strip diff text and reasoning
	Standard                  // retain everything
	Full                      // retain everything
)

// ParseVerbosity maps a string to a Verbosity. Unknown strings default to
// Standard.
func ParseVerbosity(s string) Verbosity {
	switch s {
	case "minimal":
		return Minimal
	case "full":
		return Full
	default:
		return Standard
	}
}

// FormatResult returns a copy of the result with fields stripped according to
// verbosity. At Minimal, the change's diff text and the classification
// reasoning are dropped (omitted from JSON via omitempty); counts, categories,
// and deadlines are always retained.
func FormatResult(r model.Result, verbosity Verbosity) model.Result {
	if verbosity == Minimal {
		r.Change.DiffText = ""
		r.Classification.Reasoning = ""
	}
	return r
}
