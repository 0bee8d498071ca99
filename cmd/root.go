// =============================================================================
// Excel to vCard Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the conversion itself: it takes the input spreadsheet as its positional
// argument and writes the .vcf file.
//
// COBRA CLI STRUCTURE:
//   rootCmd   (xlsx2vcf <input>)
//   ├── sheetsCmd  (xlsx2vcf sheets <input>)
//   └── versionCmd (xlsx2vcf version)
//
// FLAGS:
//   --sheet,  -s : Sheet to convert (default "Workers")
//   --output, -o : Destination file (default "Exported.vcf")
//   --config     : Optional YAML configuration file
//   --verbose, -v: Debug logging, including every skipped row
//   --dry-run    : Convert without writing the destination file
//
// EXIT CODES:
//   0 on success, 1 on any failure.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/ginjaninja78/XLSX-to-VCF-conversion/internal/config"
	"github.com/ginjaninja78/XLSX-to-VCF-conversion/internal/converter"
	"github.com/ginjaninja78/XLSX-to-VCF-conversion/internal/validation"
	"github.com/spf13/cobra"
)

// rootOptions holds the flag values of the root command.
type rootOptions struct {
	sheet   string
	output  string
	cfgFile string
	verbose bool
	dryRun  bool
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "xlsx2vcf <input>",
		Short: "Excel to vCard Converter - Export a contact sheet as a .vcf file",
		Long: `xlsx2vcf reads contact rows from a spreadsheet sheet and writes them as
vCard 2.1 records, one per row that has a phone number.

Recognized columns:
  Phone, Name, Surname, MiddleName, Prefix, Suffix, Mail, Organization, Title

Rows without a phone number are skipped. Other columns are ignored.

Example Usage:
  xlsx2vcf Contacts.xlsx
  xlsx2vcf data.xlsx --sheet "Contacts" --output "my_contacts.vcf"
  xlsx2vcf sheets data.xlsx`,

		Args: cobra.ExactArgs(1),

		// Errors are printed once by Execute.
		SilenceErrors: true,
		SilenceUsage:  true,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, opts, args[0])
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.sheet, "sheet", "s", config.DefaultSheet, "Sheet name to process")
	flags.StringVarP(&opts.output, "output", "o", config.DefaultOutput, "Output vCard file name")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Convert without writing the output file")

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "Path to an optional YAML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output for debugging")

	rootCmd.AddCommand(newSheetsCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the CLI. It is called by main.main().
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// CONVERSION
// =============================================================================

// runConvert converts one sheet and prints a summary.
func runConvert(cmd *cobra.Command, opts *rootOptions, input string) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	// Flags win over the configuration file only when given explicitly.
	sheet := cfg.Sheet
	if cmd.Flags().Changed("sheet") {
		sheet = opts.sheet
	}
	output := cfg.Output
	if cmd.Flags().Changed("output") {
		output = opts.output
	}

	conv := converter.New(cfg,
		converter.WithLogger(newLogger(cmd, opts)),
		converter.WithDryRun(opts.dryRun),
	)

	result, err := conv.Run(input, sheet, output)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if result.DryRun {
		fmt.Fprintf(out, "Dry run: %d contacts would be written to '%s'\n", result.Processed, result.OutputFile)
	} else {
		fmt.Fprintf(out, "Successfully converted %d contacts to '%s'\n", result.Processed, result.OutputFile)
	}
	fmt.Fprintf(out, "Rows read:       %d\n", result.Total)
	fmt.Fprintf(out, "Skipped:         %d\n", result.Skipped())
	if opts.verbose && len(result.Rejections) > 0 {
		fmt.Fprint(out, validation.FormatRejections(result.Rejections))
	}

	return nil
}

// loadConfig loads the configuration file named by --config, or the defaults.
func loadConfig(opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newLogger creates the converter logger on the command's error stream, so
// stdout only carries the summary. --verbose enables debug messages.
func newLogger(cmd *cobra.Command, opts *rootOptions) converter.Logger {
	return converter.NewLogger(cmd.ErrOrStderr(), opts.verbose)
}
