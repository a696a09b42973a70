// Package cli implements the argus command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/huntridge-labs/argus/internal/config"
)

// v is initialized before any init() runs, so subcommand files can bind
// their flags to it.
var v = config.NewViper()

var rootCmd = &cobra.Command{
	Use:   "argus",
	Short: "Classify infrastructure-as-code changes against a compliance taxonomy",
	Long: `Argus classifies IaC changes into compliance categories (ROUTINE,
ADAPTIVE, TRANSFORMATIVE, IMPACT) using ordered rule matching with an
optional AI fallback, and derives business-day notification deadlines
from the classification.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("profile", "", "path to the classification profile (YAML or JSON); omit for built-in defaults")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	v.BindPFlag("profile", rootCmd.PersistentFlags().Lookup("profile"))
	v.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(validateCmd)
}
