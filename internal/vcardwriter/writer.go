// =============================================================================
// Excel to vCard Converter - vCard Writer Module
// =============================================================================
//
// This module turns built contact records into vCard text and writes the
// result to the destination file.
//
// OUTPUT STRUCTURE:
//   Records are written back to back in row order, one block per contact:
//
//   BEGIN:VCARD
//   VERSION:2.1
//   N:Doe;Jane;;;
//   FN:Jane Doe
//   TEL;CELL:555-1234
//   ORG:Acme
//   END:VCARD
//
//   Every line ends with "\n". No blank line separates records. An empty
//   record list produces an empty file.
//
// VERSION:
//   The version tag is a fixed constant. It is not derived from the set of
//   properties a record uses.
//
// =============================================================================

package vcardwriter

import (
	"bytes"

	"github.com/ginjaninja78/XLSX-to-VCF-conversion/internal/types"
	"github.com/ginjaninja78/XLSX-to-VCF-conversion/pkg/utils"
)

const (
	// Begin opens every record.
	Begin = "BEGIN:VCARD"

	// Version is written as the second line of every record.
	Version = "VERSION:2.1"

	// End closes every record.
	End = "END:VCARD"

	lineEnding = "\n"
)

// Serialize renders the records as one vCard text blob.
func Serialize(records []types.VCardRecord) []byte {
	var buffer bytes.Buffer

	for _, record := range records {
		writeRecord(&buffer, record)
	}

	return buffer.Bytes()
}

// writeRecord writes a single record, markers included.
func writeRecord(buffer *bytes.Buffer, record types.VCardRecord) {
	writeLine(buffer, Begin)
	writeLine(buffer, Version)
	for _, line := range record.Lines {
		writeLine(buffer, line.String())
	}
	writeLine(buffer, End)
}

func writeLine(buffer *bytes.Buffer, line string) {
	buffer.WriteString(line)
	buffer.WriteString(lineEnding)
}

// Write replaces the destination file with blob.
//
// RETURNS:
//   - *types.WriteError if the destination cannot be created or written.
func Write(blob []byte, path string) error {
	if err := utils.WriteFileAtomic(path, blob, 0644); err != nil {
		return &types.WriteError{Path: path, Err: err}
	}
	return nil
}
