package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/huntridge-labs/argus/internal/profile"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a classification profile without classifying anything",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := v.GetString("profile")
		if path == "" {
			return fmt.Errorf("validate requires --profile")
		}
		prof, err := profile.Load(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "profile %q (version %s) is valid: %d rules\n",
			prof.Name, prof.Version, prof.Rules.Count())
		return nil
	},
}
