package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func sampleDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "sales.csv", "region,sales\nWest,120\nEast,80\n")
	writeFile(t, dir, "monthly_orders.csv", "month,orders\n2024-01,10\n")
	writeFile(t, dir, "Customer-List.csv", "name\nAda\n")
	writeFile(t, dir, "notes.txt", "not a dataset")
	return dir
}

func TestList(t *testing.T) {
	dir := sampleDir(t)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir.csv"), 0o755))

	names, err := New(dir).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Customer-List.csv", "monthly_orders.csv", "sales.csv"}, names)
}

func TestListMissingDirectory(t *testing.T) {
	_, err := New("/nonexistent/tabletalk-data").List(context.Background())
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	store := New(sampleDir(t))
	ctx := context.Background()

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"exact file name", "sales.csv", "sales.csv"},
		{"bare name gets extension", "sales", "sales.csv"},
		{"spaces become underscores", "monthly orders", "monthly_orders.csv"},
		{"spaces become hyphens case-insensitively", "customer list", "Customer-List.csv"},
		{"case-insensitive bare name", "SALES", "sales.csv"},
		{"unknown name resolves empty", "inventory", ""},
		{"empty name resolves empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Resolve(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFetchCSV(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sales.csv", strings.Join([]string{
		"region,product,sales",
		"West,Widget,120",
		"East,Widget", // short record, trailing column nil
		"South,Gadget,60",
		"",
	}, "\n"))

	ds, err := New(dir).Fetch(context.Background(), "sales.csv", 0)
	require.NoError(t, err)
	require.Len(t, ds.Rows, 3)
	assert.Equal(t, []string{"region", "product", "sales"}, ds.ColumnNames())

	assert.Equal(t, "120", ds.Rows[0]["sales"])
	assert.Nil(t, ds.Rows[1]["sales"])
	assert.Equal(t, "Gadget", ds.Rows[2]["product"])
}

func TestFetchRowLimit(t *testing.T) {
	dir := t.TempDir()
	var sb strings.Builder
	sb.WriteString("id,value\n")
	for i := 0; i < 50; i++ {
		fmt.Fprintf(&sb, "%d,%d\n", i, i*10)
	}
	writeFile(t, dir, "big.csv", sb.String())

	ds, err := New(dir).Fetch(context.Background(), "big.csv", 10)
	require.NoError(t, err)
	assert.Len(t, ds.Rows, 10)
}

func TestFetchEmptyCells(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "gaps.csv", "a,b\n1,\n,2\n")

	ds, err := New(dir).Fetch(context.Background(), "gaps.csv", 0)
	require.NoError(t, err)
	require.Len(t, ds.Rows, 2)
	assert.Nil(t, ds.Rows[0]["b"])
	assert.Nil(t, ds.Rows[1]["a"])
	assert.Equal(t, "2", ds.Rows[1]["b"])
}

func TestFetchUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "hello")

	_, err := New(dir).Fetch(context.Background(), "notes.txt", 0)
	assert.ErrorContains(t, err, "unsupported dataset file")
}

func TestFetchMissingFile(t *testing.T) {
	_, err := New(t.TempDir()).Fetch(context.Background(), "ghost.csv", 0)
	assert.Error(t, err)
}
