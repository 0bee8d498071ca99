// =============================================================================
// Excel to vCard Converter - XLSX Row Source
// =============================================================================
//
// This module reads contact rows from an Excel workbook. It is one of the two
// Row Sources used by the converter (the other being csvparser).
//
// SHEET STRUCTURE (Expected Layout):
//   The first row of the sheet is the header. Every following non-blank row is
//   a contact. Column order does not matter; columns are found by header name.
//
//   | Name  | Surname | Phone    | Mail             | Organization |
//   |-------|---------|----------|------------------|--------------|
//   | Jane  | Doe     | 555-1234 |                  | Acme         |
//   | John  | Smith   | 555-9876 | john@example.com |              |
//
// CELL VALUES:
//   With RawCellValues enabled the number format of a cell is not applied, so
//   a phone stored as a number keeps all of its digits. Cells carrying a date
//   number format are the exception: their serial value is converted back to
//   a date and written using types.DateLayout.
//
//   | Stored  | Number format | Read as               |
//   |---------|---------------|-----------------------|
//   | 7916123 | General       | "7916123"             |
//   | 45306   | m/d/yy h:mm   | "2024-01-15 00:00:00" |
//
// =============================================================================

package xlsxparser

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/ginjaninja78/XLSX-to-VCF-conversion/internal/types"
	"github.com/xuri/excelize/v2"
)

// Options controls how the workbook is read.
type Options struct {
	// RawCellValues disables number formatting of cell values.
	RawCellValues bool
}

// Workbook is an open Excel file.
type Workbook struct {
	path string
	file *excelize.File
}

// Open opens the workbook at path.
//
// RETURNS:
//   - *types.SourceNotFoundError if path does not exist.
//   - *types.LoadError if the file cannot be opened as a workbook.
func Open(path string, opts Options) (*Workbook, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, &types.SourceNotFoundError{Path: path}
	}

	f, err := excelize.OpenFile(path, excelize.Options{RawCellValue: opts.RawCellValues})
	if err != nil {
		return nil, &types.LoadError{Path: path, Err: fmt.Errorf("failed to open workbook: %w", err)}
	}

	return &Workbook{path: path, file: f}, nil
}

// SheetNames returns the sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// Rows returns the data rows of the named sheet, top to bottom.
//
// RETURNS:
//   - *types.SheetNotFoundError if the sheet does not exist.
//   - *types.LoadError if the sheet cannot be read.
func (w *Workbook) Rows(sheet string) ([]types.RawRow, error) {
	names := w.SheetNames()
	if !contains(names, sheet) {
		return nil, &types.SheetNotFoundError{Sheet: sheet, Available: names}
	}

	grid, err := w.file.GetRows(sheet)
	if err != nil {
		return nil, &types.LoadError{Path: w.path, Err: fmt.Errorf("failed to read rows of sheet %q: %w", sheet, err)}
	}

	w.formatDates(sheet, grid)
	return types.RowsFromGrid(grid), nil
}

// formatDates rewrites date serials in grid as types.DateLayout text.
func (w *Workbook) formatDates(sheet string, grid [][]string) {
	date1904 := false
	if props, err := w.file.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	isDate := make(map[int]bool)
	for r, row := range grid {
		for c, value := range row {
			serial, err := strconv.ParseFloat(value, 64)
			if err != nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				continue
			}
			styleID, err := w.file.GetCellStyle(sheet, cell)
			if err != nil || styleID == 0 {
				continue
			}
			date, seen := isDate[styleID]
			if !seen {
				date = w.isDateStyle(styleID)
				isDate[styleID] = date
			}
			if !date {
				continue
			}
			t, err := excelize.ExcelDateToTime(serial, date1904)
			if err != nil {
				continue
			}
			grid[r][c] = t.Format(types.DateLayout)
		}
	}
}

func (w *Workbook) isDateStyle(styleID int) bool {
	style, err := w.file.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}
	if style.CustomNumFmt != nil {
		return isDateFormat(*style.CustomNumFmt)
	}
	return isBuiltInDateFormat(style.NumFmt)
}

// isBuiltInDateFormat reports whether id is one of the built-in date or time
// number formats, including the East Asian ones.
func isBuiltInDateFormat(id int) bool {
	switch {
	case id >= 14 && id <= 22,
		id >= 27 && id <= 36,
		id >= 45 && id <= 47,
		id >= 50 && id <= 58:
		return true
	}
	return false
}

var nonDateParts = regexp.MustCompile(`"[^"]*"|\[[^\]]*\]|\\.|_.|\*.`)

// isDateFormat reports whether a custom number format code renders a date or
// time. Quoted literals, bracketed sections and escaped characters are
// ignored.
func isDateFormat(code string) bool {
	if code == "" || strings.EqualFold(code, "General") {
		return false
	}
	code = nonDateParts.ReplaceAllString(code, "")
	for _, r := range strings.ToLower(code) {
		switch r {
		case 'y', 'm', 'd', 'h', 's':
			return true
		}
	}
	return false
}

// Close releases the workbook.
func (w *Workbook) Close() error {
	return w.file.Close()
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
