package core

import (
	"strings"

	"github.com/tabletalk/tabletalk/schema"
)

// financialMetricHints decide when a scalar-looking query still deserves a
// chart, which triggers automatic dimension selection.
var financialMetricHints = []string{"sales", "revenue", "profit", "amount"}

// categoricalDimensionHints rank the usual grouping columns for the
// auto-dimension fallback's second pass.
var categoricalDimensionHints = []string{
	"category", "region", "product", "segment", "country", "state", "item",
}

// excludedDimensionHints name columns that make useless axes.
var excludedDimensionHints = []string{"id", "url", "image", "link"}

// LooksFinancial reports whether a metric name suggests money, making a
// chart worth recommending even without an explicit chart request.
func LooksFinancial(metric string) bool {
	lower := strings.ToLower(metric)
	for _, hint := range financialMetricHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

// AutoDimension picks a grouping column when the query resolved a metric but
// no dimension: first a time-like column, then a common categorical column,
// then the first short string column that is not an identifier.
func AutoDimension(ds *schema.Dataset) string {
	for _, col := range ds.Columns {
		lower := strings.ToLower(col.Name)
		for _, hint := range []string{"date", "year", "month", "time"} {
			if strings.Contains(lower, hint) {
				return col.Name
			}
		}
	}

	for _, col := range ds.Columns {
		lower := strings.ToLower(col.Name)
		for _, hint := range categoricalDimensionHints {
			if strings.Contains(lower, hint) {
				return col.Name
			}
		}
	}

	for _, col := range ds.Columns {
		if col.Type != schema.TypeString {
			continue
		}
		if containsAny(strings.ToLower(col.Name), excludedDimensionHints) {
			continue
		}
		if firstValueUnder(ds, col.Name, 50) {
			return col.Name
		}
	}
	return ""
}

// firstValueUnder checks that the column's first non-nil value stays short
// enough to label an axis.
func firstValueUnder(ds *schema.Dataset, column string, limit int) bool {
	for _, row := range ds.Rows {
		v, ok := row[column].(string)
		if !ok || v == "" {
			continue
		}
		return len(v) < limit
	}
	return false
}
