// =============================================================================
// csvtree - Main Entry Point
// =============================================================================
//
// csvtree converts a CSV table of expected test outputs into a directory
// tree of text files, one per row, grouped by category.
//
// USAGE:
//   csvtree <csv_file>      - Write <csv name>/<Category>/<Test>.txt files
//   csvtree version         - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : table readers, settings and the converter
//   - pkg/           : file layout helpers
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/csvtree/cmd"
)

func main() {
	cmd.Execute()
}
