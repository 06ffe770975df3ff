package cli

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/daryltucker/paclplot/internal/engine"
	"github.com/daryltucker/paclplot/internal/output"
)

func newFiguresCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "figures",
		Short: "List configured figures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Figure", "Kind", "Output", "Panels", "Independent", "Category"})
			table.SetAutoWrapText(false)

			for _, name := range opts.cfg.FigureNames() {
				fig := opts.cfg.Figures[name]
				table.Append([]string{
					name,
					fig.Kind,
					fig.Output,
					fmt.Sprint(len(fig.Panels)),
					fig.Independent,
					fig.Category,
				})
			}

			table.Render()
			return nil
		},
	}
}

func newSummarizeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "summarize <figure> <input.json>",
		Short: "Print the aggregated points of a figure without rendering",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := engine.Summarize(opts.cfg, args[0], args[1])
			if err != nil {
				return err
			}

			output.WriteTable(cmd.OutOrStdout(), rows)
			return nil
		},
	}
}
