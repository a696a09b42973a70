package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/huntridge-labs/argus/internal/changeset"
	"github.com/huntridge-labs/argus/internal/config"
	"github.com/huntridge-labs/argus/internal/engine"
	"github.com/huntridge-labs/argus/internal/engine/fallback"
	"github.com/huntridge-labs/argus/internal/engine/matcher"
	"github.com/huntridge-labs/argus/internal/logging"
	"github.com/huntridge-labs/argus/internal/model"
	"github.com/huntridge-labs/argus/internal/output"
	fileout "github.com/huntridge-labs/argus/internal/output/file"
	"github.com/huntridge-labs/argus/internal/output/stdout"
	"github.com/huntridge-labs/argus/internal/output/webhook"
	"github.com/huntridge-labs/argus/internal/pipeline"
	"github.com/huntridge-labs/argus/internal/profile"
	"github.com/huntridge-labs/argus/internal/provider"

	// Register provider implementations.
	_ "github.com/huntridge-labs/argus/internal/provider/anthropic"
	_ "github.com/huntridge-labs/argus/internal/provider/openai"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify a change document and derive notification deadlines",
	RunE:  runClassify,
}

func init() {
	f := classifyCmd.Flags()
	f.String("input", "", "path to the change document JSON (required)")
	f.Bool("enable-ai", false, "enable the AI fallback for unmatched changes")
	f.String("api-key", "", "provider API key (default: provider-specific env var)")
	f.Int("fallback-workers", 4, "max concurrent AI fallback calls")
	f.Duration("call-timeout", 30*time.Second, "per-call timeout for AI fallback requests")
	f.String("output", "stdout", "result destination: stdout, file, webhook")
	f.String("output-path", "", "file output path (required with --output=file)")
	f.String("webhook-url", "", "webhook URL (required with --output=webhook)")
	f.String("verbosity", "standard", "record verbosity: minimal, standard, full")
	f.Bool("pretty", false, "pretty-print stdout JSON")
	f.String("report", "", "optional path for the full run report JSON")
	f.String("reference-date", "", "reference date for deadlines (YYYY-MM-DD, default: today)")
	classifyCmd.MarkFlagRequired("input")
	v.BindPFlags(f)
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg := config.Load(v)
	logging.Init(cfg.Output.Format == "stdout", logging.ParseLevel(cfg.LogLevel))

	prof, err := loadProfile(cfg.ProfilePath)
	if err != nil {
		return err
	}

	changes, err := changeset.Load(cfg.InputPath)
	if err != nil {
		return err
	}

	reference, err := parseReference(cfg.Reference)
	if err != nil {
		return err
	}

	m, err := matcher.Compile(prof.Rules)
	if err != nil {
		return fmt.Errorf("compile rules: %w", err)
	}

	fb, err := buildFallback(cfg, &prof)
	if err != nil {
		return err
	}

	eng := engine.New(m, fb, engine.WithFallbackWorkers(cfg.FallbackWorkers))

	out, err := buildOutput(cfg.Output)
	if err != nil {
		return err
	}

	p := pipeline.New(eng, prof, out)
	defer p.Close()

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	slog.Info("classifying changes",
		"changes", len(changes), "rules", m.Len(), "ai_enabled", fb != nil, "profile", prof.Name)

	report, err := p.Run(ctx, changes, reference)
	if err != nil {
		return err
	}

	logSummary(report.Summary)

	if cfg.Output.ReportPath != "" {
		if err := writeReport(cfg.Output.ReportPath, report); err != nil {
			return err
		}
	}
	return nil
}

func loadProfile(path string) (profile.Profile, error) {
	if path == "" {
		slog.Info("no profile supplied, using built-in defaults")
		return profile.Default(), nil
	}
	return profile.Load(path)
}

func parseReference(s string) (time.Time, error) {
	if s == "" {
		return time.Now().UTC().Truncate(24 * time.Hour), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --reference-date %q: %w", s, err)
	}
	return t, nil
}

// buildFallback wires the AI fallback classifier, or returns nil when
// fallback is disabled by flag, by profile, or by a missing API key.
func buildFallback(cfg config.Config, prof *profile.Profile) (*fallback.Classifier, error) {
	if !cfg.EnableAI || !prof.AIFallback.Enabled {
		prof.AIFallback.Enabled = false
		return nil, nil
	}

	name := prof.AIFallback.Provider
	ctor, ok := provider.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown AI provider %q (supported: anthropic, openai)", name)
	}

	key := provider.ResolveAPIKey(name, cfg.APIKey)
	if key == "" {
		slog.Warn("AI fallback enabled but no API key available, unmatched changes go to manual review", "provider", name)
		prof.AIFallback.Enabled = false
		return nil, nil
	}

	p := ctor(provider.Config{
		Model:      prof.AIFallback.Model,
		APIKey:     key,
		APIBaseURL: prof.AIFallback.APIBaseURL,
		MaxTokens:  prof.AIFallback.MaxTokens,
		Timeout:    cfg.CallTimeout,
	})
	return fallback.New(prof.AIFallback, p), nil
}

func buildOutput(cfg config.OutputConfig) (output.Output, error) {
	verbosity := output.ParseVerbosity(cfg.Verbosity)
	switch cfg.Format {
	case "stdout", "":
		return stdout.New(verbosity, cfg.Pretty), nil
	case "file":
		if cfg.Path == "" {
			return nil, fmt.Errorf("--output=file requires --output-path")
		}
		return fileout.New(cfg.Path, verbosity)
	case "webhook":
		if cfg.WebhookURL == "" {
			return nil, fmt.Errorf("--output=webhook requires --webhook-url")
		}
		return webhook.New(cfg.WebhookURL), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", cfg.Format)
	}
}

func logSummary(s model.Summary) {
	slog.Info("classification summary",
		"routine", s.Routine,
		"adaptive", s.Adaptive,
		"transformative", s.Transformative,
		"impact", s.Impact,
		"manual_review", s.ManualReview,
		"highest_severity", string(s.HighestSeverity),
	)
}

func writeReport(path string, report model.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	slog.Info("report written", "path", path, "run_id", report.RunID)
	return nil
}
