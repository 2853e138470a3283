package views

import (
	"strings"

	"imuplot/models"
)

// RequiredColumns is the header every capture file must carry. Files may add
// columns and order them freely.
var RequiredColumns = models.Sample{}.CSVHeader()

// normalizeHeader trims whitespace and a leading UTF-8 byte order mark.
func normalizeHeader(name string) string {
	return strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF"))
}

// ColumnPositions maps every required column to its position in header.
// The second result names the first required column that is missing.
func ColumnPositions(header []string) (map[string]int, string) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		name := normalizeHeader(h)
		if _, dup := pos[name]; !dup {
			pos[name] = i
		}
	}
	out := make(map[string]int, len(RequiredColumns))
	for _, col := range RequiredColumns {
		i, ok := pos[col]
		if !ok {
			return nil, col
		}
		out[col] = i
	}
	return out, ""
}
