// =============================================================================
// Excel to vCard Converter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Excel to vCard Converter CLI. It
// delegates command execution to the cmd package.
//
// USAGE:
//   xlsx2vcf <input> [--sheet NAME] [--output FILE]
//   xlsx2vcf sheets <input>
//   xlsx2vcf version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Core conversion logic (not for external import)
//   - pkg/       : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/XLSX-to-VCF-conversion/cmd"
)

func main() {
	cmd.Execute()
}
