// Package filestore serves datasets from a directory of CSV and XLSX files.
package filestore

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tabletalk/tabletalk/internal/contract"
	"github.com/tabletalk/tabletalk/schema"
	"github.com/xuri/excelize/v2"
)

// Store resolves data source names against the files in a single directory.
type Store struct {
	dir string
}

var _ contract.DatasetStore = (*Store)(nil) // Compile-time check

// New returns a Store rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// List returns every loadable dataset file name in the directory.
func (s *Store) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read data directory %q: %w", s.dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if loadableFile(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Resolve maps a data source name to a file name, trying in order: exact,
// +.csv, spaces-to-underscore (+.csv), spaces-to-hyphen (+.csv), and finally
// a case-insensitive sweep. A miss returns an empty id, not an error.
func (s *Store) Resolve(ctx context.Context, name string) (string, error) {
	files, err := s.List(ctx)
	if err != nil {
		return "", nil // degrade to unresolved, the engine treats it as no data
	}

	have := make(map[string]string, len(files))
	for _, f := range files {
		have[f] = f
	}

	candidates := contract.ResolveCandidates(name)
	for _, c := range candidates {
		if f, ok := have[c]; ok {
			return f, nil
		}
		if f, ok := have[c+".xlsx"]; ok {
			return f, nil
		}
	}

	// Case-insensitive fallback, extension-agnostic.
	for _, c := range candidates {
		lower := strings.ToLower(c)
		for _, f := range files {
			fl := strings.ToLower(f)
			if fl == lower || strings.TrimSuffix(fl, filepath.Ext(fl)) == lower {
				return f, nil
			}
		}
	}
	return "", nil
}

// Fetch loads up to limit rows from a resolved file.
func (s *Store) Fetch(_ context.Context, id string, limit int) (*schema.Dataset, error) {
	if limit <= 0 || limit > schema.MaxFetchRows {
		limit = schema.MaxFetchRows
	}
	path := filepath.Join(s.dir, id)

	switch strings.ToLower(filepath.Ext(id)) {
	case ".csv":
		return readCSV(path, limit)
	case ".xlsx":
		return readXLSX(path, limit)
	default:
		return nil, fmt.Errorf("unsupported dataset file %q", id)
	}
}

func readCSV(path string, limit int) (*schema.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read CSV header: %w", err)
	}

	var rows []schema.Row
	for len(rows) < limit {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}
		rows = append(rows, recordToRow(header, record))
	}
	return schema.NewDatasetWithColumns(header, rows), nil
}

func readXLSX(path string, limit int) (*schema.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet %q: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return schema.NewDataset(nil), nil
	}

	header := records[0]
	var rows []schema.Row
	for _, record := range records[1:] {
		if len(rows) >= limit {
			break
		}
		rows = append(rows, recordToRow(header, record))
	}
	return schema.NewDatasetWithColumns(header, rows), nil
}

// recordToRow pairs header names with cells; short records leave trailing
// columns nil.
func recordToRow(header, record []string) schema.Row {
	row := make(schema.Row, len(header))
	for i, name := range header {
		if i < len(record) && record[i] != "" {
			row[name] = record[i]
		} else {
			row[name] = nil
		}
	}
	return row
}

func loadableFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".xlsx":
		return true
	default:
		return false
	}
}
