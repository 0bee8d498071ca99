package converter

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ginjaninja78/XLSX-to-VCF-conversion/internal/config"
	"github.com/ginjaninja78/XLSX-to-VCF-conversion/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var contactHeader = []interface{}{
	"Prefix", "Name", "MiddleName", "Surname", "Suffix", "Phone", "Mail", "Organization", "Title", "Notes",
}

// writeWorkbook saves a workbook whose sheet holds the given grid, plus an
// empty "Archive" sheet.
func writeWorkbook(t *testing.T, sheet string, grid [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	_, err := f.NewSheet("Archive")
	require.NoError(t, err)

	for r, row := range grid {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "Contacts.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func newTestConverter(cfg *config.Config, opts ...Option) *Converter {
	return New(cfg, append([]Option{WithLogger(nopLogger{})}, opts...)...)
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRun(t *testing.T) {
	input := writeWorkbook(t, "Workers", [][]interface{}{
		contactHeader,
		{"", "Jane", "", "Doe", "", "555-1234", "", "Acme", "", "ignored"},
		{"", "NoPhone", "", "Person", "", "", "x@example.com"},
		{"Dr.", " John ", "Q.", "Public", "Jr.", 79161234567, "john@example.com", "", "Engineer"},
		{"", "Nan", "", "Case", "", "nan"},
	})
	output := filepath.Join(t.TempDir(), "Exported.vcf")

	result, err := newTestConverter(nil).Run(input, "Workers", output)
	require.NoError(t, err)

	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 2, result.Skipped())
	require.Len(t, result.Rejections, 2)
	assert.Equal(t, 3, result.Rejections[0].Row)
	assert.Equal(t, 5, result.Rejections[1].Row)
	assert.Equal(t, output, result.OutputFile)
	assert.False(t, result.DryRun)

	want := "BEGIN:VCARD\n" +
		"VERSION:2.1\n" +
		"N:Doe;Jane;;;\n" +
		"FN:Jane Doe\n" +
		"TEL;CELL:555-1234\n" +
		"ORG:Acme\n" +
		"END:VCARD\n" +
		"BEGIN:VCARD\n" +
		"VERSION:2.1\n" +
		"N:Public;John;Q.;Dr.;Jr.\n" +
		"FN:Dr. John Q. Public Jr.\n" +
		"TEL;CELL:79161234567\n" +
		"EMAIL;HOME:john@example.com\n" +
		"TITLE:Engineer\n" +
		"END:VCARD\n"

	assert.Equal(t, want, readOutput(t, output))
}

func TestRunRecordCountMatchesPhones(t *testing.T) {
	phones := []interface{}{"1", "", "nan", "  ", "2", "NaN", "3", " 4 "}

	grid := [][]interface{}{{"Name", "Phone"}}
	expected := 0
	for i, p := range phones {
		grid = append(grid, []interface{}{"Person", p})
		if CleanCell(phones[i]) != "" {
			expected++
		}
	}

	input := writeWorkbook(t, "Workers", grid)
	output := filepath.Join(t.TempDir(), "Exported.vcf")

	result, err := newTestConverter(nil).Run(input, "Workers", output)
	require.NoError(t, err)

	assert.Equal(t, expected, result.Processed)
	assert.Equal(t, len(phones), result.Total)
	assert.Equal(t, expected, strings.Count(readOutput(t, output), "BEGIN:VCARD"))
}

func TestRunEmptySheet(t *testing.T) {
	input := writeWorkbook(t, "Workers", [][]interface{}{contactHeader})
	output := filepath.Join(t.TempDir(), "Exported.vcf")

	result, err := newTestConverter(nil).Run(input, "Workers", output)
	require.NoError(t, err)

	assert.Zero(t, result.Total)
	assert.Zero(t, result.Processed)
	assert.Equal(t, "", readOutput(t, output))
}

func TestRunOverwritesOutput(t *testing.T) {
	input := writeWorkbook(t, "Workers", [][]interface{}{{"Phone"}, {"1"}})
	output := filepath.Join(t.TempDir(), "Exported.vcf")
	require.NoError(t, os.WriteFile(output, []byte(strings.Repeat("stale\n", 100)), 0644))

	_, err := newTestConverter(nil).Run(input, "Workers", output)
	require.NoError(t, err)

	assert.Equal(t, "BEGIN:VCARD\nVERSION:2.1\nN:;;;;\nFN:\nTEL;CELL:1\nEND:VCARD\n", readOutput(t, output))
}

func TestRunSheetNotFound(t *testing.T) {
	input := writeWorkbook(t, "Staff", [][]interface{}{{"Phone"}, {"1"}})
	output := filepath.Join(t.TempDir(), "Exported.vcf")

	_, err := newTestConverter(nil).Run(input, "Workers", output)

	var sheetErr *types.SheetNotFoundError
	require.True(t, errors.As(err, &sheetErr))
	assert.Equal(t, "Workers", sheetErr.Sheet)
	assert.Equal(t, []string{"Staff", "Archive"}, sheetErr.Available)
	assert.Contains(t, err.Error(), "Staff, Archive")

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr), "output must not be created")
}

func TestRunSourceNotFound(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "Exported.vcf")

	_, err := newTestConverter(nil).Run(filepath.Join(dir, "missing.xlsx"), "Workers", output)

	assert.True(t, errors.Is(err, types.ErrSourceNotFound))
	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr), "output must not be created")
}

func TestRunInvalidWorkbook(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "broken.xlsx")
	require.NoError(t, os.WriteFile(input, []byte("garbage"), 0644))

	_, err := newTestConverter(nil).Run(input, "Workers", filepath.Join(dir, "out.vcf"))

	var loadErr *types.LoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestRunWriteError(t *testing.T) {
	input := writeWorkbook(t, "Workers", [][]interface{}{{"Phone"}, {"1"}})
	output := filepath.Join(t.TempDir(), "missing-dir", "Exported.vcf")

	_, err := newTestConverter(nil).Run(input, "Workers", output)

	var writeErr *types.WriteError
	require.True(t, errors.As(err, &writeErr))
	assert.Equal(t, output, writeErr.Path)
}

func TestRunDryRun(t *testing.T) {
	input := writeWorkbook(t, "Workers", [][]interface{}{{"Phone"}, {"1"}, {""}, {"2"}})
	output := filepath.Join(t.TempDir(), "Exported.vcf")

	result, err := newTestConverter(nil, WithDryRun(true)).Run(input, "Workers", output)
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.Equal(t, 2, result.Processed)
	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunCustomColumns(t *testing.T) {
	cfg, err := config.Parse([]byte("columns:\n  phone: Mobile\n  mail: E-mail\nmissing_markers: [nan, \"-\"]\n"))
	require.NoError(t, err)

	input := writeWorkbook(t, "Workers", [][]interface{}{
		{"Name", "Mobile", "E-mail", "Phone"},
		{"Jane", "555", "jane@example.com", "ignored"},
		{"Bob", "-", "", "999"},
	})
	output := filepath.Join(t.TempDir(), "Exported.vcf")

	result, err := newTestConverter(cfg).Run(input, "Workers", output)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, "BEGIN:VCARD\nVERSION:2.1\nN:;Jane;;;\nFN:Jane\nTEL;CELL:555\nEMAIL;HOME:jane@example.com\nEND:VCARD\n",
		readOutput(t, output))
}

func TestRunPaddedColumnHeader(t *testing.T) {
	cfg, err := config.Parse([]byte("columns:\n  phone: \" Mobile \"\n"))
	require.NoError(t, err)

	input := writeWorkbook(t, "Workers", [][]interface{}{
		{"Name", " Mobile"},
		{"Jane", "555"},
	})
	output := filepath.Join(t.TempDir(), "Exported.vcf")

	result, err := newTestConverter(cfg).Run(input, "Workers", output)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)
}

func TestRunDatesAndMultiLineCells(t *testing.T) {
	input := writeWorkbook(t, "Workers", [][]interface{}{
		{"Name", "Phone", "Organization", "Title"},
		{"Jane", 79161234567, "Acme\r\nSales Dept", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"Line\nBreak", "555\n", "", ""},
	})
	output := filepath.Join(t.TempDir(), "Exported.vcf")

	result, err := newTestConverter(nil).Run(input, "Workers", output)
	require.NoError(t, err)
	require.Equal(t, 2, result.Processed)

	want := "BEGIN:VCARD\nVERSION:2.1\nN:;Jane;;;\nFN:Jane\nTEL;CELL:79161234567\nORG:Acme Sales Dept\nTITLE:2024-01-15 00:00:00\nEND:VCARD\n" +
		"BEGIN:VCARD\nVERSION:2.1\nN:;Line Break;;;\nFN:Line Break\nTEL;CELL:555\nEND:VCARD\n"
	assert.Equal(t, want, readOutput(t, output))

	for _, line := range strings.Split(strings.TrimSuffix(readOutput(t, output), "\n"), "\n") {
		assert.Contains(t, line, ":", "every line is a vCard property: %q", line)
	}
}

func TestRunCSV(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "Workers.csv")
	require.NoError(t, os.WriteFile(input, []byte("Name,Surname,Phone,Organization\nJane,Doe,555-1234,Acme\nNo,Phone,,\n"), 0644))
	output := filepath.Join(dir, "Exported.vcf")

	result, err := newTestConverter(nil).Run(input, "Workers", output)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, "BEGIN:VCARD\nVERSION:2.1\nN:Doe;Jane;;;\nFN:Jane Doe\nTEL;CELL:555-1234\nORG:Acme\nEND:VCARD\n",
		readOutput(t, output))
}

func TestSheetNames(t *testing.T) {
	input := writeWorkbook(t, "Workers", nil)

	names, err := newTestConverter(nil).SheetNames(input)
	require.NoError(t, err)
	assert.Equal(t, []string{"Workers", "Archive"}, names)

	_, err = newTestConverter(nil).SheetNames(filepath.Join(t.TempDir(), "none.xlsx"))
	assert.True(t, errors.Is(err, types.ErrSourceNotFound))
}

func TestContactRowIgnoresUnknownColumns(t *testing.T) {
	c := newTestConverter(nil)

	row := c.ContactRow(types.RawRow{
		Number: 9,
		Cells: map[string]string{
			"Phone":  " 555 ",
			"Mail":   "NAN",
			"Street": "Main St",
		},
	})

	assert.Equal(t, 9, row.Number)
	assert.Equal(t, "555", row.Get(types.FieldPhone))
	assert.Equal(t, "", row.Get(types.FieldMail))
	assert.Equal(t, "", row.Get(types.FieldName))
}
