package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kalgynirae/netlaborious/internal/errors"
	"github.com/kalgynirae/netlaborious/internal/ui"
)

// batchCmd runs a batch file of command lines.
var batchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "Run a batch file of actions",
	Long: `Read command lines from a file (or stdin) and run them.

Every line is tokenized, parsed, and validated before anything executes;
if any line has a problem, nothing runs and each problem is reported with
its line number. ARGS lines set options that carry into later lines.

Example batch file:
  ARGS --vsuser alice --vshost h1
  snapshot --vm web01 --snapshot nightly
  clone --vm web01 --dest-host h2

Examples:
  netlab batch provision.netlab
  netlab batch < provision.netlab
  netlab batch - < provision.netlab`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var input io.Reader = os.Stdin
		if len(args) == 0 && ui.IsTerminalFile(os.Stdin) {
			ui.PrintWarning("Reading commands from the terminal; end with Ctrl-D")
		}
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return errors.WrapWithCode(err, errors.ErrConfig,
					fmt.Sprintf("Can't open batch file: %s", args[0]),
					"Check the path is correct")
			}
			defer f.Close()
			input = f
		}

		runner, closeSession, err := buildRunner()
		if err != nil {
			return err
		}
		defer closeSession()

		if err := runner.RunBatch(cmd.Context(), input); err != nil {
			// Validation problems were already reported line by line.
			if errors.IsCode(err, errors.ErrValidate) {
				return errors.NewExitError(2)
			}
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
}
