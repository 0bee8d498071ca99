// =============================================================================
// Excel to vCard Converter - CSV Row Source
// =============================================================================
//
// This module reads contact rows from a CSV export of a contact sheet. A CSV
// file holds exactly one sheet; its name is the file name without extension,
// so "staff.csv" exposes the sheet "staff".
//
// PARSING PIPELINE:
//   1. Open the file and drop a leading UTF-8 byte order mark
//   2. Read every record (variable field counts are allowed)
//   3. Treat the first record as the header
//   4. Convert each following non-blank record to header -> value
//
// =============================================================================

package csvparser

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ginjaninja78/XLSX-to-VCF-conversion/internal/config"
	"github.com/ginjaninja78/XLSX-to-VCF-conversion/internal/types"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// File is a parsed CSV file.
type File struct {
	path  string
	sheet string
	grid  [][]string
}

// Open reads and parses the CSV file at path.
//
// RETURNS:
//   - *types.SourceNotFoundError if path does not exist.
//   - *types.LoadError if the file cannot be read or is not valid CSV.
func Open(path string, settings config.CSVSettings) (*File, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &types.SourceNotFoundError{Path: path}
	}
	if err != nil {
		return nil, &types.LoadError{Path: path, Err: fmt.Errorf("failed to open file: %w", err)}
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	if head, err := reader.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		reader.Discard(len(utf8BOM))
	}

	csvReader := csv.NewReader(reader)
	configureReader(csvReader, settings)

	grid, err := csvReader.ReadAll()
	if err != nil {
		return nil, &types.LoadError{Path: path, Err: fmt.Errorf("failed to read CSV: %w", err)}
	}

	return &File{
		path:  path,
		sheet: SheetName(path),
		grid:  grid,
	}, nil
}

// configureReader applies the CSV settings to the reader.
func configureReader(reader *csv.Reader, settings config.CSVSettings) {
	if r, _ := utf8.DecodeRuneInString(settings.Delimiter); r != utf8.RuneError {
		reader.Comma = r
	}
	if r, _ := utf8.DecodeRuneInString(settings.Comment); r != utf8.RuneError {
		reader.Comment = r
	}

	// Exports from spreadsheets are not always rectangular.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
}

// SheetName returns the single sheet name a CSV path exposes.
func SheetName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// SheetNames returns the one sheet in the file.
func (f *File) SheetNames() []string {
	return []string{f.sheet}
}

// Rows returns the data rows of the sheet.
func (f *File) Rows(sheet string) ([]types.RawRow, error) {
	if sheet != f.sheet {
		return nil, &types.SheetNotFoundError{Sheet: sheet, Available: f.SheetNames()}
	}
	return types.RowsFromGrid(f.grid), nil
}

// Close is a no-op; the file is fully read by Open.
func (f *File) Close() error {
	return nil
}
