// =============================================================================
// Excel to vCard Converter - Row Validation
// =============================================================================
//
// This module decides whether a cleaned contact row can become a vCard.
//
// POLICY:
//   The phone number is the mandatory key of a contact. A row whose cleaned
//   Phone value is empty is rejected. Rejection is not an error: the row is
//   skipped and counted, and the run carries on.
//
//   No other field is required and no format checks are made on phone or
//   mail values beyond presence.
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/XLSX-to-VCF-conversion/internal/types"
)

// Rejection records why a row produced no record.
type Rejection struct {
	// Row is the 1-based sheet row number.
	Row int

	// Field is the field that caused the rejection.
	Field types.Field

	// Reason is a human-readable explanation.
	Reason string
}

// String implements fmt.Stringer.
func (r Rejection) String() string {
	return fmt.Sprintf("row %d: %s (%s)", r.Row, r.Reason, r.Field)
}

// Check returns a Rejection if the row cannot be converted, or nil.
func Check(row types.ContactRow) *Rejection {
	if !row.Has(types.FieldPhone) {
		return &Rejection{
			Row:    row.Number,
			Field:  types.FieldPhone,
			Reason: "missing phone number",
		}
	}
	return nil
}

// FormatRejections formats rejections for display or logging.
func FormatRejections(rejections []Rejection) string {
	if len(rejections) == 0 {
		return "No rows skipped."
	}

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Skipped %d row(s):\n", len(rejections)))
	for _, r := range rejections {
		builder.WriteString("  ")
		builder.WriteString(r.String())
		builder.WriteString("\n")
	}

	return builder.String()
}
