/*
PURPOSE:
  Writes aggregated series to a CSV file, one row per plotted point.
  Lets the numbers behind a figure be checked without reading the chart.

REQUIREMENTS:
  User-specified:
  - Summary output next to the chart when enabled.

  Implementation-discovered:
  - Overwrite on each run; the input file is the source of truth.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Consumes: internal/model.Row

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use encoding/csv.
  - Flush() after every write.

USAGE:
  w, err := output.NewCSVWriter("plot_fss_summary.csv")
  w.Write(row)
  w.Close()
*/

package output

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/daryltucker/paclplot/internal/model"
)

// CSVHeader is the first line of every summary CSV.
var CSVHeader = []string{"figure", "panel", "series", "category", "x", "mean", "margin", "trials"}

// CSVWriter handles writing summary rows to a CSV file.
type CSVWriter struct {
	closer io.Closer
	writer *csv.Writer
	mu     sync.Mutex
}

// NewCSVWriter creates a new CSVWriter.
// It overwrites the file if it exists.
func NewCSVWriter(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	cw, err := newCSVWriter(f, f)
	if err != nil {
		f.Close()
		return nil, err
	}

	return cw, nil
}

func newCSVWriter(w io.Writer, c io.Closer) (*CSVWriter, error) {
	writer := csv.NewWriter(w)
	if err := writer.Write(CSVHeader); err != nil {
		return nil, err
	}
	writer.Flush()

	return &CSVWriter{closer: c, writer: writer}, writer.Error()
}

// Write writes a single row to the CSV file.
// It is thread-safe.
func (cw *CSVWriter) Write(r model.Row) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	record := []string{
		r.Figure,
		r.Panel,
		r.Series,
		string(r.Category),
		strconv.FormatFloat(r.X, 'g', -1, 64),
		strconv.FormatFloat(r.Mean, 'f', 4, 64),
		strconv.FormatFloat(r.Margin, 'f', 4, 64),
		strconv.Itoa(r.Trials),
	}

	if err := cw.writer.Write(record); err != nil {
		return err
	}
	cw.writer.Flush()
	return cw.writer.Error()
}

// Close closes the underlying file.
func (cw *CSVWriter) Close() error {
	cw.writer.Flush()
	if cw.closer == nil {
		return cw.writer.Error()
	}
	return cw.closer.Close()
}
