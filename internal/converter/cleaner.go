// =============================================================================
// Excel to vCard Converter - Cell Cleaning
// =============================================================================
//
// This module normalizes raw cell values into plain strings. Cleaning happens
// once, at the boundary where a RawRow becomes a ContactRow, so everything
// downstream works with strings where "" means the value is absent.
//
// CLEANING RULES:
//   - nil and NaN map to ""
//   - Any other value is converted to text and trimmed
//   - Line breaks inside the text fold to a single space, so a value never
//     spans more than one vCard line
//   - Text equal to a missing marker ("nan" by default, case-insensitive)
//     maps to ""
//
//   Numbers are stringified without type-specific formatting, dates use
//   types.DateLayout:
//     5551234 (float64) -> "5551234"
//     time.Time         -> "2024-01-15 00:00:00"
//     "  Acme  "        -> "Acme"
//     " NaN "           -> ""
//     "Sales\r\nEMEA"    -> "Sales EMEA"
//
// Cleaning is idempotent: Clean(Clean(x)) == Clean(x).
//
// =============================================================================

package converter

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ginjaninja78/XLSX-to-VCF-conversion/internal/config"
	"github.com/ginjaninja78/XLSX-to-VCF-conversion/internal/types"
)

// Cleaner normalizes cell values.
type Cleaner struct {
	markers map[string]bool
}

// NewCleaner creates a Cleaner that treats the given markers as missing.
func NewCleaner(markers []string) *Cleaner {
	c := &Cleaner{markers: make(map[string]bool, len(markers))}
	for _, m := range markers {
		c.markers[strings.ToLower(strings.TrimSpace(m))] = true
	}
	return c
}

var lineBreaks = regexp.MustCompile(`[ \t]*[\r\n]+\s*`)

var defaultCleaner = NewCleaner(config.DefaultMissingMarkers)

// CleanCell cleans a value with the default missing markers.
func CleanCell(raw interface{}) string {
	return defaultCleaner.Clean(raw)
}

// Clean returns the cleaned textual form of raw.
func (c *Cleaner) Clean(raw interface{}) string {
	text, ok := stringify(raw)
	if !ok {
		return ""
	}

	text = strings.TrimSpace(lineBreaks.ReplaceAllString(text, " "))
	if c.markers[strings.ToLower(text)] {
		return ""
	}
	return text
}

// stringify converts a cell value to text. It reports false for values that
// are missing by type (nil, NaN).
func stringify(raw interface{}) (string, bool) {
	switch v := raw.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case *string:
		if v == nil {
			return "", false
		}
		return *v, true
	case float64:
		if math.IsNaN(v) {
			return "", false
		}
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		if math.IsNaN(float64(v)) {
			return "", false
		}
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case time.Time:
		return v.Format(types.DateLayout), true
	case fmt.Stringer:
		return v.String(), true
	default:
		return fmt.Sprint(v), true
	}
}
