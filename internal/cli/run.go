package cli

import (
	"github.com/spf13/cobra"

	"github.com/kalgynirae/netlaborious/internal/errors"
)

// runCmd executes a single action. Flag parsing is disabled so the words
// after "--" reach the interpreter untouched; the interpreter owns option
// classification, not cobra.
var runCmd = &cobra.Command{
	Use:   "run -- <command and options>",
	Short: "Run a single action",
	Long: `Run one action with its options, using the same option handling as
batch mode but without line numbers in diagnostics.

Examples:
  netlab run -- listvms
  netlab run -- clone --vm web01 --dest-host h2
  netlab run -- upload --ovf /srv/web.ovf --host h1 --snapshot base`,
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// With flag parsing disabled, help must be handled by hand.
		for _, arg := range args {
			if arg == "-h" || arg == "--help" {
				return cmd.Help()
			}
		}
		if len(args) > 0 && args[0] == "--" {
			args = args[1:]
		}
		if len(args) == 0 {
			return errors.New(errors.ErrParse,
				"No command given",
				"Usage: netlab run -- <command> [options]")
		}

		runner, closeSession, err := buildRunner()
		if err != nil {
			return err
		}
		defer closeSession()

		if err := runner.RunArgs(cmd.Context(), args); err != nil {
			// Validation problems were already reported.
			if errors.IsCode(err, errors.ErrValidate) {
				return errors.NewExitError(2)
			}
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
