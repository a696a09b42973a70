// Package config holds runtime settings — everything that is about *this
// invocation* rather than the classification policy. Policy (rules, AI
// settings, notification offsets) lives in the profile document; runtime
// settings come from flags and ARGUS_-prefixed environment variables via
// viper.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all Argus runtime configuration.
type Config struct {
	ProfilePath string
	InputPath   string
	EnableAI    bool
	APIKey      string // explicit key; empty falls back to the provider's env var

	FallbackWorkers int
	CallTimeout     time.Duration

	LogLevel  string
	Output    OutputConfig
	Reference string // reference date (YYYY-MM-DD); empty means today
}

// OutputConfig holds result destination settings.
type OutputConfig struct {
	Format     string // "stdout", "file", "webhook"
	Path       string // file output path
	WebhookURL string
	Verbosity  string // "minimal", "standard", "full"
	Pretty     bool
	ReportPath string // optional full-report JSON path
}

// Load reads configuration from viper (flags bound by the CLI layer plus
// ARGUS_* environment variables) with sensible defaults.
func Load(v *viper.Viper) Config {
	return Config{
		ProfilePath:     v.GetString("profile"),
		InputPath:       v.GetString("input"),
		EnableAI:        v.GetBool("enable-ai"),
		APIKey:          v.GetString("api-key"),
		FallbackWorkers: intDefault(v, "fallback-workers", 4),
		CallTimeout:     durationDefault(v, "call-timeout", 30*time.Second),
		LogLevel:        stringDefault(v, "log-level", "info"),
		Output: OutputConfig{
			Format:     stringDefault(v, "output", "stdout"),
			Path:       v.GetString("output-path"),
			WebhookURL: v.GetString("webhook-url"),
			Verbosity:  stringDefault(v, "verbosity", "standard"),
			Pretty:     v.GetBool("pretty"),
			ReportPath: v.GetString("report"),
		},
		Reference: v.GetString("reference-date"),
	}
}

// NewViper builds a viper instance with the ARGUS_ environment prefix.
// Flag names with dashes map to underscored env vars (ARGUS_ENABLE_AI).
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("ARGUS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func stringDefault(v *viper.Viper, key, fallback string) string {
	if s := v.GetString(key); s != "" {
		return s
	}
	return fallback
}

func intDefault(v *viper.Viper, key string, fallback int) int {
	if n := v.GetInt(key); n > 0 {
		return n
	}
	return fallback
}

func durationDefault(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	if d := v.GetDuration(key); d > 0 {
		return d
	}
	return fallback
}
