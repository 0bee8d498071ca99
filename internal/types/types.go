// =============================================================================
// Excel to vCard Converter - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - xlsxparser / csvparser (RawRow)
//   - converter              (ContactRow, VCardRecord)
//   - validation             (ContactRow)
//   - vcardwriter            (VCardRecord)
//
// =============================================================================

package types

import "strings"

// =============================================================================
// FIELDS
// =============================================================================

// Field identifies one of the recognized contact columns.
// Any column not listed here is ignored by the converter.
type Field int

const (
	FieldPhone Field = iota
	FieldName
	FieldSurname
	FieldMiddleName
	FieldPrefix
	FieldSuffix
	FieldMail
	FieldOrganization
	FieldTitle

	fieldCount
)

// Fields lists every recognized field, phone first.
var Fields = []Field{
	FieldPhone,
	FieldName,
	FieldSurname,
	FieldMiddleName,
	FieldPrefix,
	FieldSuffix,
	FieldMail,
	FieldOrganization,
	FieldTitle,
}

var fieldNames = [fieldCount]string{
	FieldPhone:        "Phone",
	FieldName:         "Name",
	FieldSurname:      "Surname",
	FieldMiddleName:   "MiddleName",
	FieldPrefix:       "Prefix",
	FieldSuffix:       "Suffix",
	FieldMail:         "Mail",
	FieldOrganization: "Organization",
	FieldTitle:        "Title",
}

// String returns the default column header for the field.
func (f Field) String() string {
	if f < 0 || f >= fieldCount {
		return "Unknown"
	}
	return fieldNames[f]
}

// =============================================================================
// ROWS
// =============================================================================

// DateLayout is the textual form of date and time cell values.
const DateLayout = "2006-01-02 15:04:05"

// RawRow is a single data row as produced by a Row Source.
type RawRow struct {
	// Number is the 1-based row number in the sheet. The header is row 1.
	Number int

	// Cells maps a column header to the cell's textual value.
	// Columns present in the header but empty in this row map to "".
	Cells map[string]string
}

// ContactRow is a row after boundary cleaning. Every recognized field holds a
// plain string; an empty string means the value is absent.
type ContactRow struct {
	Number int
	values [fieldCount]string
}

// NewContactRow builds a ContactRow from already cleaned values.
// Fields missing from values are empty.
func NewContactRow(number int, values map[Field]string) ContactRow {
	row := ContactRow{Number: number}
	for f, v := range values {
		if f >= 0 && f < fieldCount {
			row.values[f] = v
		}
	}
	return row
}

// Get returns the cleaned value of the field, or "" when absent.
func (r ContactRow) Get(f Field) string {
	if f < 0 || f >= fieldCount {
		return ""
	}
	return r.values[f]
}

// Has reports whether the field has a non-empty value.
func (r ContactRow) Has(f Field) bool {
	return r.Get(f) != ""
}

// =============================================================================
// VCARD RECORDS
// =============================================================================

// VCardLine is one "NAME;PARAM:value" property line, without the line ending.
type VCardLine struct {
	Name   string
	Params []string
	Value  string
}

// String renders the property line.
func (l VCardLine) String() string {
	var b strings.Builder
	b.WriteString(l.Name)
	for _, p := range l.Params {
		b.WriteByte(';')
		b.WriteString(p)
	}
	b.WriteByte(':')
	b.WriteString(l.Value)
	return b.String()
}

// VCardRecord is the ordered set of property lines for one contact.
// The BEGIN, VERSION and END markers are added by the writer.
type VCardRecord struct {
	// Row is the source row number the record was built from.
	Row int

	Lines []VCardLine
}

// Line returns the first line with the given property name.
func (r VCardRecord) Line(name string) (VCardLine, bool) {
	for _, l := range r.Lines {
		if l.Name == name {
			return l, true
		}
	}
	return VCardLine{}, false
}
