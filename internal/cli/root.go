// Package cli wires the netlab commands together: flag handling, config
// discovery, session selection, and the batch interpreter behind the run
// and batch commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kalgynirae/netlaborious/internal/config"
	"github.com/kalgynirae/netlaborious/internal/errors"
	"github.com/kalgynirae/netlaborious/internal/logger"
	"github.com/kalgynirae/netlaborious/internal/ui"
)

// Global flags shared by every command.
var (
	configFlag  string
	verboseFlag bool
	dryRunFlag  bool
	noColorFlag bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "netlab",
	Short: "Batch runner for vSphere and NETLAB+ provisioning",
	Long: `netlab runs provisioning actions against a vSphere management host,
either one at a time or from a batch file of command lines.

Batch files share options across lines with the ARGS pseudo-command,
and every line is validated before anything runs.

Examples:
  netlab run -- clone --vm web01 --dest-host h2
  netlab batch provision.netlab
  netlab batch < provision.netlab`,
	SilenceUsage:  true,
	SilenceErrors: true,
	// Parse global flags at each level so "netlab --dry-run run -- ..."
	// works even though run disables its own flag parsing.
	TraverseChildren: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verboseFlag {
			os.Setenv("NETLAB_DEBUG", "1")
		}
		if noColorFlag || !ui.IsTerminalFile(os.Stdout) {
			ui.DisableColors()
		}
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if code, ok := errors.GetExitCode(err); ok {
			os.Exit(code)
		}
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// loadConfig resolves and loads the effective config for this run.
func loadConfig() (*config.Config, error) {
	path, err := config.Find(configFlag)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	logger.Default().Debug("loaded config from %s", path)
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "print detailed messages for debugging")
	rootCmd.PersistentFlags().BoolVar(&dryRunFlag, "dry-run", false, "record actions instead of performing them")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
}
