/*
PURPOSE:
  Provides a structured logger for paclplot.
  Wraps slog for consistent output.

REQUIREMENTS:
  User-specified:
  - "Sane" CLI output. Not spammy.
  - Ambiguous input (mixed trial counts, 4 vs 4.0 categories) is reported, not hidden.

  Implementation-discovered:
  - Level and handler are chosen from config/flags.

ARCHITECTURE INTEGRATION:
  - Used everywhere.

IMPLEMENTATION RULES:
  - Use `log/slog`.
  - Logs go to stderr so stdout stays clean for `summarize`.

USAGE:
  output.Logger.Info("message", "key", "value")
*/

package output

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/hyp3rd/ewrap"

	"github.com/daryltucker/paclplot/internal/sentinel"
)

var Logger *slog.Logger

func init() {
	Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// SetLogger allows overriding the default logger (e.g. for testing or config changes)
func SetLogger(l *slog.Logger) {
	Logger = l
}

// NewLogger builds a logger writing to w at the named level ("debug",
// "info", "warn", "error") with a "text" or "json" handler.
func NewLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, ewrap.Wrapf(sentinel.ErrInvalidConfig, "log level %q", level)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, ewrap.Wrapf(sentinel.ErrInvalidConfig, "log format %q", format)
	}
}
