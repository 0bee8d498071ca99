// =============================================================================
// Excel to vCard Converter - Core Converter Module
// =============================================================================
//
// This module orchestrates the conversion of one contact sheet into a .vcf
// file. It coordinates the Row Source, cleaning, validation and the vCard
// writer.
//
// CONVERSION PIPELINE:
//   1. Open the input file (xlsxparser, or csvparser for .csv inputs)
//   2. Load the rows of the requested sheet
//   3. Clean every recognized cell into a ContactRow
//   4. Reject rows without a phone number, build a record for the rest
//   5. Serialize all records in row order
//   6. Write the text to the destination (skipped on a dry run)
//
// FAILURE SEMANTICS:
//   Every stage is all or nothing. A load failure returns before anything is
//   written. Rejected rows are counted, never reported as failures.
//
// =============================================================================

package converter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ginjaninja78/XLSX-to-VCF-conversion/internal/config"
	"github.com/ginjaninja78/XLSX-to-VCF-conversion/internal/csvparser"
	"github.com/ginjaninja78/XLSX-to-VCF-conversion/internal/types"
	"github.com/ginjaninja78/XLSX-to-VCF-conversion/internal/validation"
	"github.com/ginjaninja78/XLSX-to-VCF-conversion/internal/vcardwriter"
	"github.com/ginjaninja78/XLSX-to-VCF-conversion/internal/xlsxparser"
	"github.com/ginjaninja78/XLSX-to-VCF-conversion/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result contains the outcome of a conversion run.
type Result struct {
	// Input is the path of the input file.
	Input string

	// Sheet is the sheet that was converted.
	Sheet string

	// OutputFile is the destination path.
	OutputFile string

	// Total is the number of data rows read from the sheet.
	Total int

	// Processed is the number of vCard records written.
	Processed int

	// Rejections lists the rows that produced no record.
	Rejections []validation.Rejection

	// DryRun is true when the destination was not written.
	DryRun bool

	// Duration is the wall time of the run.
	Duration time.Duration
}

// Skipped returns the number of rows that produced no record.
func (r *Result) Skipped() int {
	return r.Total - r.Processed
}

// =============================================================================
// ROW SOURCE
// =============================================================================

// Source is an open tabular input file.
type Source interface {
	// SheetNames returns the sheets available in the file.
	SheetNames() []string

	// Rows returns the data rows of a sheet, top to bottom.
	Rows(sheet string) ([]types.RawRow, error)

	Close() error
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter converts contact sheets to vCard files.
type Converter struct {
	cfg     *config.Config
	cleaner *Cleaner
	logger  Logger
	dryRun  bool
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(c *Converter) {
		c.logger = l
	}
}

// WithDryRun builds and serializes records without writing the output file.
func WithDryRun(dryRun bool) Option {
	return func(c *Converter) {
		c.dryRun = dryRun
	}
}

// New creates a Converter. A nil cfg uses the defaults.
func New(cfg *config.Config, opts ...Option) *Converter {
	if cfg == nil {
		cfg = config.Default()
	}

	c := &Converter{
		cfg:     cfg,
		cleaner: NewCleaner(cfg.MissingMarkers),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = NewLogger(os.Stderr, false)
	}

	return c
}

// =============================================================================
// LOADING
// =============================================================================

// OpenSource opens path with the Row Source matching its extension.
func (c *Converter) OpenSource(path string) (Source, error) {
	if !utils.FileExists(path) {
		return nil, &types.SourceNotFoundError{Path: path}
	}

	var (
		src Source
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		src, err = csvparser.Open(path, c.cfg.CSV)
	} else {
		src, err = xlsxparser.Open(path, xlsxparser.Options{RawCellValues: c.cfg.UseRawCellValues()})
	}
	if err != nil {
		return nil, asLoadError(path, err)
	}

	return src, nil
}

// SheetNames returns the sheets available in the input file.
func (c *Converter) SheetNames(path string) ([]string, error) {
	src, err := c.OpenSource(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return src.SheetNames(), nil
}

// LoadRows reads the named sheet and cleans every row.
//
// RETURNS:
//   - *types.SourceNotFoundError if path does not exist.
//   - *types.SheetNotFoundError if the sheet does not exist; it lists the
//     available sheets.
//   - *types.LoadError for any other read failure.
func (c *Converter) LoadRows(path, sheet string) ([]types.ContactRow, error) {
	src, err := c.OpenSource(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	raw, err := src.Rows(sheet)
	if err != nil {
		var sheetErr *types.SheetNotFoundError
		if errors.As(err, &sheetErr) {
			c.logger.Error("sheet '%s' not found in '%s', available sheets: %s",
				sheet, path, strings.Join(sheetErr.Available, ", "))
		}
		return nil, asLoadError(path, err)
	}

	rows := make([]types.ContactRow, len(raw))
	for i, r := range raw {
		rows[i] = c.ContactRow(r)
	}

	c.logger.Info("loaded %d rows from sheet '%s'", len(rows), sheet)
	return rows, nil
}

// ContactRow cleans the recognized columns of a raw row. Unrecognized columns
// are dropped.
func (c *Converter) ContactRow(raw types.RawRow) types.ContactRow {
	values := make(map[types.Field]string, len(types.Fields))
	for _, f := range types.Fields {
		if v, ok := raw.Cells[c.cfg.Columns.Header(f)]; ok {
			values[f] = c.cleaner.Clean(v)
		}
	}
	return types.NewContactRow(raw.Number, values)
}

// asLoadError leaves the typed load errors alone and wraps anything else.
func asLoadError(path string, err error) error {
	var (
		notFound *types.SourceNotFoundError
		sheetErr *types.SheetNotFoundError
		loadErr  *types.LoadError
	)
	if errors.As(err, &notFound) || errors.As(err, &sheetErr) || errors.As(err, &loadErr) {
		return err
	}
	return &types.LoadError{Path: path, Err: err}
}

// =============================================================================
// MAIN CONVERSION
// =============================================================================

// Run converts sheet of input into output.
func (c *Converter) Run(input, sheet, output string) (*Result, error) {
	startTime := time.Now()

	rows, err := c.LoadRows(input, sheet)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Input:      input,
		Sheet:      sheet,
		OutputFile: output,
		Total:      len(rows),
		DryRun:     c.dryRun,
	}

	records := make([]types.VCardRecord, 0, len(rows))
	for _, row := range rows {
		if rejection := validation.Check(row); rejection != nil {
			result.Rejections = append(result.Rejections, *rejection)
			c.logger.Debug("skipping %s", rejection)
			continue
		}

		record, ok := BuildRecord(row)
		if !ok {
			continue
		}
		records = append(records, record)
	}
	result.Processed = len(records)

	blob := vcardwriter.Serialize(records)

	if c.dryRun {
		c.logger.Info("dry run: %d of %d contacts would be written to '%s'", result.Processed, result.Total, output)
	} else {
		if err := vcardwriter.Write(blob, output); err != nil {
			return nil, fmt.Errorf("conversion of %d contacts failed: %w", result.Processed, err)
		}
		c.logger.Info("converted %d of %d contacts to '%s'", result.Processed, result.Total, output)
	}

	result.Duration = time.Since(startTime)
	return result, nil
}
