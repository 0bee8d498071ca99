package cmd

import (
	"fmt"

	"github.com/ginjaninja78/XLSX-to-VCF-conversion/internal/converter"
	"github.com/spf13/cobra"
)

// newSheetsCmd builds the 'sheets' command, which lists the sheets of an
// input file, one per line.
func newSheetsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sheets <input>",
		Short: "List the sheet names of an input file",
		Long: `List the sheet names of an input file, one per line, in workbook order.
A .csv file has a single sheet named after the file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			names, err := converter.New(cfg, converter.WithLogger(newLogger(cmd, opts))).SheetNames(args[0])
			if err != nil {
				return err
			}

			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
