/*
PURPOSE:
  Entry point for paclplot.
  Initializes the CLI root command and executes it.

REQUIREMENTS:
  User-specified:
  - Single binary that replaces the per-figure plotting scripts.
  - A failed run must exit non-zero and name the field/record at fault.

  Implementation-discovered:
  - Uses cobra for CLI command management.

ARCHITECTURE INTEGRATION:
  - Calls: internal/cli.Execute()
  - Depends on: internal/cli package

ERROR HANDLING:
  - Explicit error check on Execute(); exit code 1 on failure.

IMPLEMENTATION RULES:
  - Critical: Keep main() minimal. All logic belongs in internal/ packages.

USAGE:
  go build -o paclplot ./cmd/paclplot
  ./paclplot fss results_fss.json

RELATED FILES:
  - internal/cli/root.go - The actual root command definition.
*/

package main

import (
	"fmt"
	"os"

	"github.com/daryltucker/paclplot/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
