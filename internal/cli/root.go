/*
PURPOSE:
  Defines the root Cobra command for the paclplot CLI.
  Handles global flags, configuration loading and logger setup.

REQUIREMENTS:
  User-specified:
  - Provide a CLI interface.
  - Support global flags like --config.

  Implementation-discovered:
  - Needs to expose an Execute() function for main.go.
  - Every subcommand needs the loaded config, so it is loaded once in
    PersistentPreRunE.

ARCHITECTURE INTEGRATION:
  - Called by: cmd/paclplot/main.go
  - Calls: Child commands (figure commands, render, summarize, figures, config)

ERROR HANDLING:
  - Returns error to main.go for exit code handling.
  - Cobra's own error printing is silenced; main prints once.

IMPLEMENTATION RULES:
  - Use `PersistentFlags()` for flags available to all subcommands.
  - Commands are built by constructors so tests get a fresh tree.

USAGE:
  Called by main.go.

SELF-HEALING INSTRUCTIONS:
  - If adding new global flags, add them to newRootCmd and applyOverrides.

RELATED FILES:
  - cmd/paclplot/main.go

MAINTENANCE:
  - Update when adding global configuration options.
*/

package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/daryltucker/paclplot/internal/config"
	"github.com/daryltucker/paclplot/internal/output"
)

// options carries global flags and the config they resolve to.
type options struct {
	cfgFile   string
	logLevel  string
	outputDir string

	cfg *config.Config
}

// Execute executes the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "paclplot",
		Short: "Charts for the PACL paper's benchmark results",
		Long: `paclplot reads the JSON trial files written by the PACL benchmarks and renders
the evaluation figures: mean and 95% confidence margin per measurement, grouped
by category and sorted by the independent variable.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is ./paclplot.yaml)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")
	cmd.PersistentFlags().StringVarP(&opts.outputDir, "output-dir", "o", "", "directory for charts and summaries (overrides config)")

	cmd.AddCommand(newFigureCmds(opts)...)
	cmd.AddCommand(
		newRenderCmd(opts),
		newSummarizeCmd(opts),
		newFiguresCmd(opts),
		newConfigCmd(),
	)

	return cmd
}

// load reads the config file, applies flag overrides and installs the logger.
func (o *options) load() error {
	cfg, err := config.Load(o.cfgFile)
	// config.Load handles "no file found" by returning defaults.
	if err != nil {
		return err
	}

	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.outputDir != "" {
		cfg.OutputDir = o.outputDir
	}

	logger, err := output.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	output.SetLogger(logger)

	o.cfg = cfg
	return nil
}
