// Package schema has models, enums and shared constants for all parts of tabletalk.
package schema

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Row maps a column name to a scalar cell value (string, float64, int, bool or nil).
type Row map[string]any

// Column describes a single dataset column with its inferred type.
type Column struct {
	Name string     // Column name as it appears in the source
	Type ColumnType // Type inferred once at dataset load time
}

// Dataset is an ordered sequence of rows plus per-column type information.
// The column set is derived from the first row and assumed uniform; it is
// not re-validated per row.
type Dataset struct {
	Columns []Column
	Rows    []Row

	byName map[string]int
}

// NewDataset builds a Dataset from raw rows, inferring each column's type
// from its first non-nil sample value. Column order follows the first row's
// sorted key order so repeated loads of the same data agree.
func NewDataset(rows []Row) *Dataset {
	ds := &Dataset{Rows: rows, byName: make(map[string]int)}
	if len(rows) == 0 {
		return ds
	}

	names := make([]string, 0, len(rows[0]))
	for name := range rows[0] {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		col := Column{Name: name, Type: inferColumnType(name, rows)}
		ds.byName[name] = len(ds.Columns)
		ds.Columns = append(ds.Columns, col)
	}
	return ds
}

// NewDatasetWithColumns builds a Dataset preserving an explicit column order,
// used by loaders that know the source header order (CSV, XLSX, SQL).
func NewDatasetWithColumns(names []string, rows []Row) *Dataset {
	ds := &Dataset{Rows: rows, byName: make(map[string]int)}
	for _, name := range names {
		col := Column{Name: name, Type: inferColumnType(name, rows)}
		ds.byName[name] = len(ds.Columns)
		ds.Columns = append(ds.Columns, col)
	}
	return ds
}

// Column returns the column with the given name, if present.
func (d *Dataset) Column(name string) (Column, bool) {
	i, ok := d.byName[name]
	if !ok {
		return Column{}, false
	}
	return d.Columns[i], true
}

// HasColumn reports whether the dataset contains a column with the given name.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.byName[name]
	return ok
}

// IsNumeric reports whether the named column was inferred as numeric.
func (d *Dataset) IsNumeric(name string) bool {
	col, ok := d.Column(name)
	return ok && col.Type == TypeNumber
}

// ColumnNames returns all column names in dataset order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.Rows) }

// inferColumnType classifies a column from its first non-nil sample value.
func inferColumnType(name string, rows []Row) ColumnType {
	for _, row := range rows {
		v, ok := row[name]
		if !ok || v == nil {
			continue
		}
		switch val := v.(type) {
		case float64, float32, int, int32, int64:
			return TypeNumber
		case bool:
			return TypeBool
		case time.Time:
			return TypeDate
		case string:
			if val == "" {
				continue
			}
			if _, ok := ParseNumeric(val); ok {
				return TypeNumber
			}
			if _, ok := ParseDate(val); ok {
				return TypeDate
			}
			return TypeString
		default:
			return TypeString
		}
	}
	return TypeString
}

// ParseNumeric attempts to read a value as a number after stripping every
// character that is not a digit, a decimal point or a minus sign. This keeps
// formatted values like "$1,200.50" usable as metrics.
func ParseNumeric(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		cleaned := stripNonNumeric(val)
		if cleaned == "" || cleaned == "-" || cleaned == "." {
			return 0, false
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Stringify renders any cell value for display and grouping. Nil and blank
// values become UnknownLabel.
func Stringify(v any) string {
	if v == nil {
		return UnknownLabel
	}
	switch val := v.(type) {
	case string:
		if strings.TrimSpace(val) == "" {
			return UnknownLabel
		}
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format("2006-01-02")
	default:
		return UnknownLabel
	}
}

func stripNonNumeric(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// dateLayouts are tried in order when classifying string columns and when
// sorting time-like dimensions.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"2006/01/02",
	"01/02/2006",
	"Jan 2006",
	"Jan-2006",
	"January 2006",
	"2006-01",
	"2006",
}

// ParseDate parses a date string against the known layouts.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
