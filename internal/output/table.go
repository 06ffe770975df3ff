package output

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/daryltucker/paclplot/internal/model"
)

// WriteTable renders rows as an aligned console table.
func WriteTable(w io.Writer, rows []model.Row) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Panel", "Series", "X", "Mean", "±95%", "Trials"})
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for _, r := range rows {
		table.Append([]string{
			r.Panel,
			r.Series,
			strconv.FormatFloat(r.X, 'g', -1, 64),
			strconv.FormatFloat(r.Mean, 'f', 4, 64),
			strconv.FormatFloat(r.Margin, 'f', 4, 64),
			strconv.Itoa(r.Trials),
		})
	}

	table.Render()
}
