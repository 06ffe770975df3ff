/*
PURPOSE:
  Defines the figure subcommands (anon, fss, vfss, pir) and 'render'.
  Each renders one chart from one benchmark JSON file.

REQUIREMENTS:
  User-specified:
  - One command per paper figure, taking the results file.
  - Accept the input as argument or with --file, as the old plotting scripts did.

  Implementation-discovered:
  - 'render' covers figures added through the config file.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Run()
  - Uses: internal/config

ERROR HANDLING:
  - Returns error if the input is missing or the engine run fails.

IMPLEMENTATION RULES:
  - Setup flags in the constructors.
  - Logic: Load Config (root) -> Engine.Run -> print path.

USAGE:
  paclplot fss results_fss.json
  paclplot pir --file results_pir.json -o ./figures
  paclplot render custom results.json

RELATED FILES:
  - internal/cli/root.go
  - internal/engine/runner.go
*/

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daryltucker/paclplot/internal/engine"
)

// builtins are the figures that get their own subcommand.
var builtins = []struct {
	name  string
	short string
}{
	{"anon", "Server CPU time of Express and Spectrum with and without PACL"},
	{"fss", "FSS evaluation cost with DPF-PACL and DMPF-PACL"},
	{"vfss", "Verifiable FSS evaluation cost with VDPF-PACL and VDMPF-PACL"},
	{"pir", "PIR server processing time with and without VDPF-PACL"},
}

func newFigureCmds(opts *options) []*cobra.Command {
	cmds := make([]*cobra.Command, 0, len(builtins))
	for _, b := range builtins {
		var file string

		cmd := &cobra.Command{
			Use:   b.name + " [input.json]",
			Short: b.short,
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				input, err := inputPath(args, file)
				if err != nil {
					return err
				}
				return render(cmd, opts, b.name, input)
			},
		}
		cmd.Flags().StringVarP(&file, "file", "f", "", "benchmark results JSON")

		cmds = append(cmds, cmd)
	}

	return cmds
}

func newRenderCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "render <figure> <input.json>",
		Short: "Render any configured figure",
		Long: `Renders a figure defined in the configuration file (or one of the built-in
figures) from a benchmark results file. Use 'paclplot figures' to list them.`,
		Example: `  # Same as 'paclplot fss results.json'
  paclplot render fss results.json

  # A figure added in paclplot.yaml, written to ./out
  paclplot render --config paclplot.yaml -o ./out custom results.json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return render(cmd, opts, args[0], args[1])
		},
	}
}

func render(cmd *cobra.Command, opts *options, figure, input string) error {
	path, err := engine.Run(opts.cfg, figure, input)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func inputPath(args []string, file string) (string, error) {
	switch {
	case len(args) == 1 && file != "":
		return "", fmt.Errorf("give the input either as argument or with --file, not both")
	case len(args) == 1:
		return args[0], nil
	case file != "":
		return file, nil
	default:
		return "", fmt.Errorf("missing input file")
	}
}
