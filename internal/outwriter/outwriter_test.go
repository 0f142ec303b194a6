package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tabletalk/tabletalk/internal/contract"
	"github.com/tabletalk/tabletalk/schema"
)

func testConfig() *contract.Config {
	return &contract.Config{
		Output:    schema.TextOut,
		Precision: 2,
		Width:     120,
	}
}

func sampleResponse() *schema.AnalyticalResponse {
	return &schema.AnalyticalResponse{
		Answer:     "Here is the **Total Sales by Region**.",
		ChartType:  schema.BarChart,
		ChartTitle: "Total Sales by Region",
		Chart: &schema.ChartSpec{
			ChartType:       schema.BarChart,
			DimensionColumn: "region",
			MetricColumn:    "sales",
			Categories:      []string{"West", "East"},
			Series: []schema.Series{
				{Name: "sales", Data: []float64{120.5, 80}},
			},
		},
	}
}

func TestWriteResponseText(t *testing.T) {
	var buf bytes.Buffer
	err := writeResponseText(&buf, sampleResponse(), testConfig(), 42*time.Millisecond)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Total Sales by Region")
	assert.Contains(t, out, "West")
	assert.Contains(t, out, "120.50")
	assert.Contains(t, out, "Suggested chart: bar")
	assert.Contains(t, out, "Answered in 42ms")
}

func TestWriteResponseTextColor(t *testing.T) {
	cfg := testConfig()
	cfg.Color = true

	var buf bytes.Buffer
	err := writeResponseText(&buf, sampleResponse(), cfg, 42*time.Millisecond)
	require.NoError(t, err)

	// The label text survives regardless of whether the terminal supports
	// color (escape codes wrap it, never replace it).
	out := buf.String()
	assert.Contains(t, out, "Suggested chart:")
	assert.Contains(t, out, "bar (Total Sales by Region)")
}

func TestWriteResponseTextScalar(t *testing.T) {
	resp := &schema.AnalyticalResponse{Answer: "The Total sales is **200**."}

	var buf bytes.Buffer
	err := writeResponseText(&buf, resp, testConfig(), time.Millisecond)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "The Total sales is 200.")
	assert.NotContains(t, buf.String(), "Suggested chart")
}

func TestWriteResponseJSON(t *testing.T) {
	var buf bytes.Buffer
	err := writeResponseJSON(&buf, sampleResponse())
	require.NoError(t, err)

	var decoded schema.AnalyticalResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, schema.BarChart, decoded.ChartType)
	require.NotNil(t, decoded.Chart)
	assert.Equal(t, []string{"West", "East"}, decoded.Chart.Categories)
}

func TestWriteResponseCSV(t *testing.T) {
	var buf bytes.Buffer
	err := writeResponseCSV(&buf, sampleResponse(), testConfig())
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"region", "sales"}, records[0])
	assert.Equal(t, []string{"West", "120.50"}, records[1])
}

func TestWriteResponseCSVAnswerOnly(t *testing.T) {
	resp := &schema.AnalyticalResponse{Answer: "The total count is **5**."}

	var buf bytes.Buffer
	err := writeResponseCSV(&buf, resp, testConfig())
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "answer", records[0][0])
}

func TestWriteHistoryTable(t *testing.T) {
	entries := []schema.HistoryEntry{
		{
			AskedAt:     time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
			Query:       "total sales by region",
			DatasetID:   "sales.csv",
			Aggregation: string(schema.SumAgg),
			Answered:    true,
		},
	}

	var buf bytes.Buffer
	err := writeHistoryTable(&buf, entries, testConfig())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "total sales by region")
	assert.Contains(t, out, "sales.csv")
	assert.Contains(t, out, "Showing 1 recent queries")
}

func TestWriteHistoryTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := writeHistoryTable(&buf, nil, testConfig())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No queries recorded yet.")
}

func TestWriteHistoryCSV(t *testing.T) {
	entries := []schema.HistoryEntry{
		{
			ID:          "abc",
			Query:       "count orders",
			DatasetID:   "orders.csv",
			Aggregation: string(schema.CountAgg),
			Answered:    true,
			DurationMs:  12,
		},
	}

	var buf bytes.Buffer
	err := writeHistoryCSV(&buf, entries)
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "abc", records[1][0])
	assert.Equal(t, "count", records[1][7])
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 20))
	long := strings.Repeat("x", 30)
	got := truncate(long, 10)
	assert.Len(t, []rune(got), 10)
	assert.True(t, strings.HasSuffix(got, "…"))
}

func TestTerminalWidthOverride(t *testing.T) {
	cfg := testConfig()
	cfg.Width = 200
	assert.Equal(t, 200, terminalWidth(cfg))
}
