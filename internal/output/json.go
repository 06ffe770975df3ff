/*
PURPOSE:
  Writes aggregated series to a JSON Lines file (NDJSON).
  Optimized for machine parsing (jq, notebooks).

REQUIREMENTS:
  User-specified:
  - JSON output for easier parsing.

  Implementation-discovered:
  - One object per plotted point keeps the file grep/jq friendly.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Consumes: internal/model.Row

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use goccy/go-json encoder.
  - Thread-safe.

USAGE:
  w, err := output.NewJSONWriter("plot_fss_summary.jsonl")
  w.Write(row)
  w.Close()
*/

package output

import (
	"io"
	"os"
	"sync"

	"github.com/goccy/go-json"

	"github.com/daryltucker/paclplot/internal/model"
)

// JSONWriter handles writing rows to a JSON Lines file.
type JSONWriter struct {
	closer  io.Closer
	encoder *json.Encoder
	mu      sync.Mutex
}

// NewJSONWriter creates a new JSONWriter.
func NewJSONWriter(path string) (*JSONWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	return &JSONWriter{
		closer:  f,
		encoder: json.NewEncoder(f),
	}, nil
}

// Write writes a single row as a JSON line.
func (jw *JSONWriter) Write(r model.Row) error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	return jw.encoder.Encode(r)
}

// Close closes the underlying file.
func (jw *JSONWriter) Close() error {
	if jw.closer == nil {
		return nil
	}
	return jw.closer.Close()
}
