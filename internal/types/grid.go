package types

import "strings"

// RowsFromGrid turns a sheet grid (first row = header) into RawRows.
//
// Header cells are trimmed. Columns with an empty header are dropped and a
// repeated header keeps its first column. Data rows whose cells are all blank
// are skipped. Short rows are padded with "" for the missing columns.
func RowsFromGrid(grid [][]string) []RawRow {
	if len(grid) == 0 {
		return nil
	}

	headers := make([]string, len(grid[0]))
	seen := make(map[string]bool)
	for i, h := range grid[0] {
		h = strings.TrimSpace(h)
		if h == "" || seen[h] {
			continue
		}
		seen[h] = true
		headers[i] = h
	}

	var rows []RawRow
	for i := 1; i < len(grid); i++ {
		cells := grid[i]
		if isBlank(cells) {
			continue
		}

		row := RawRow{
			Number: i + 1,
			Cells:  make(map[string]string, len(seen)),
		}
		for col, h := range headers {
			if h == "" {
				continue
			}
			if col < len(cells) {
				row.Cells[h] = cells[col]
			} else {
				row.Cells[h] = ""
			}
		}
		rows = append(rows, row)
	}

	return rows
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
