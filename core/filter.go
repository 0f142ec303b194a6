package core

import (
	"strings"

	"github.com/tabletalk/tabletalk/schema"
)

// ApplyFilters keeps the rows whose stringified column values contain every
// filter substring, case-insensitively. Filters on different columns AND
// together. With no filters the input slice is returned unchanged.
func ApplyFilters(rows []schema.Row, filters map[string]string) []schema.Row {
	if len(filters) == 0 {
		return rows
	}

	out := make([]schema.Row, 0, len(rows))
	for _, row := range rows {
		if matchesAll(row, filters) {
			out = append(out, row)
		}
	}
	return out
}

func matchesAll(row schema.Row, filters map[string]string) bool {
	for column, want := range filters {
		cell := strings.ToLower(schema.Stringify(row[column]))
		if !strings.Contains(cell, strings.ToLower(want)) {
			return false
		}
	}
	return true
}
