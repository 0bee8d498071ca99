package converter

import (
	"strings"

	"github.com/ginjaninja78/XLSX-to-VCF-conversion/internal/types"
)

// displayOrder is the order name parts appear in the FN line.
var displayOrder = []types.Field{
	types.FieldPrefix,
	types.FieldName,
	types.FieldMiddleName,
	types.FieldSurname,
	types.FieldSuffix,
}

// BuildRecord builds the vCard record for a cleaned row. It reports false,
// and builds nothing, when the row has no phone number.
//
// The N line always carries five positional components
// (Surname;Name;MiddleName;Prefix;Suffix), empty ones included. The FN line
// joins the non-empty name parts with single spaces. EMAIL, ORG and TITLE are
// only present when their value is non-empty.
func BuildRecord(row types.ContactRow) (types.VCardRecord, bool) {
	phone := row.Get(types.FieldPhone)
	if phone == "" {
		return types.VCardRecord{}, false
	}

	record := types.VCardRecord{Row: row.Number}

	n := strings.Join([]string{
		row.Get(types.FieldSurname),
		row.Get(types.FieldName),
		row.Get(types.FieldMiddleName),
		row.Get(types.FieldPrefix),
		row.Get(types.FieldSuffix),
	}, ";")
	record.Lines = append(record.Lines, types.VCardLine{Name: "N", Value: n})

	parts := make([]string, 0, len(displayOrder))
	for _, f := range displayOrder {
		if v := row.Get(f); v != "" {
			parts = append(parts, v)
		}
	}
	record.Lines = append(record.Lines, types.VCardLine{Name: "FN", Value: strings.Join(parts, " ")})

	record.Lines = append(record.Lines, types.VCardLine{Name: "TEL", Params: []string{"CELL"}, Value: phone})

	if mail := row.Get(types.FieldMail); mail != "" {
		record.Lines = append(record.Lines, types.VCardLine{Name: "EMAIL", Params: []string{"HOME"}, Value: mail})
	}
	if org := row.Get(types.FieldOrganization); org != "" {
		record.Lines = append(record.Lines, types.VCardLine{Name: "ORG", Value: org})
	}
	if title := row.Get(types.FieldTitle); title != "" {
		record.Lines = append(record.Lines, types.VCardLine{Name: "TITLE", Value: title})
	}

	return record, true
}
