package agg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tabletalk/tabletalk/schema"
)

func salesRows() []schema.Row {
	return []schema.Row{
		{"region": "West", "sales": 10.0},
		{"region": "East", "sales": 20.0},
		{"region": "West", "sales": 30.0},
		{"region": "South", "sales": "40"},
	}
}

func TestScalar(t *testing.T) {
	rows := salesRows()

	tests := []struct {
		name     string
		fn       schema.Aggregation
		expected float64
	}{
		{"sum", schema.SumAgg, 100},
		{"avg", schema.AvgAgg, 25},
		{"min", schema.MinAgg, 10},
		{"max", schema.MaxAgg, 40},
		{"count", schema.CountAgg, 4},
		{"median even count", schema.MedianAgg, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scalar(rows, "sales", tt.fn)
			assert.True(t, got.Numeric)
			assert.InDelta(t, tt.expected, got.Num, 1e-9)
		})
	}
}

func TestScalarSumEqualsAvgTimesCount(t *testing.T) {
	rows := salesRows()
	sum := Scalar(rows, "sales", schema.SumAgg).Num
	avg := Scalar(rows, "sales", schema.AvgAgg).Num
	assert.InDelta(t, sum, avg*4, 1e-9)
}

func TestScalarCountIgnoresMetric(t *testing.T) {
	rows := salesRows()
	got := Scalar(rows, "", schema.CountAgg)
	assert.True(t, got.Numeric)
	assert.Equal(t, 4.0, got.Num)
}

func TestScalarSkipsUnparseable(t *testing.T) {
	rows := []schema.Row{
		{"sales": 10.0},
		{"sales": "N/A"},
		{"sales": "1,500.00"},
	}
	got := Scalar(rows, "sales", schema.SumAgg)
	assert.InDelta(t, 1510, got.Num, 1e-9)

	avg := Scalar(rows, "sales", schema.AvgAgg)
	assert.InDelta(t, 755, avg.Num, 1e-9)
}

func TestScalarExtremeLexicographic(t *testing.T) {
	// Mixed values fall back to string ordering without coercion.
	rows := []schema.Row{
		{"code": "beta"},
		{"code": "alpha"},
		{"code": "42"},
	}
	minVal := Scalar(rows, "code", schema.MinAgg)
	assert.False(t, minVal.Numeric)
	assert.Equal(t, "42", minVal.Text)

	maxVal := Scalar(rows, "code", schema.MaxAgg)
	assert.Equal(t, "beta", maxVal.Text)
}

func TestScalarExtremeEmpty(t *testing.T) {
	rows := []schema.Row{{"sales": nil}}
	got := Scalar(rows, "sales", schema.MaxAgg)
	assert.True(t, got.Numeric)
	assert.Equal(t, 0.0, got.Num)
}

func TestMedianOddCount(t *testing.T) {
	rows := []schema.Row{
		{"v": 9.0}, {"v": 1.0}, {"v": 5.0},
	}
	got := Scalar(rows, "v", schema.MedianAgg)
	assert.Equal(t, 5.0, got.Num)
}

func TestModeFirstSeenTieBreak(t *testing.T) {
	rows := []schema.Row{
		{"v": 3.0}, {"v": 7.0}, {"v": 7.0}, {"v": 3.0},
	}
	got := Scalar(rows, "v", schema.ModeAgg)
	assert.Equal(t, 3.0, got.Num)
}

func TestGrouped(t *testing.T) {
	rows := salesRows()
	got := Grouped(rows, "region", "sales", schema.SumAgg)

	// First-seen group order
	assert.Equal(t, []schema.AggRow{
		{Dimension: "West", Value: 40},
		{Dimension: "East", Value: 20},
		{Dimension: "South", Value: 40},
	}, got)
}

func TestGroupedEmptyMetricCountsRows(t *testing.T) {
	rows := salesRows()
	got := Grouped(rows, "region", "", schema.SumAgg)
	assert.Equal(t, 2.0, got[0].Value) // West appears twice
	assert.Equal(t, 1.0, got[1].Value)
}

func TestGroupedUnknownBucket(t *testing.T) {
	rows := []schema.Row{
		{"region": nil, "sales": 5.0},
		{"region": "  ", "sales": 7.0},
		{"region": "West", "sales": 1.0},
	}
	got := Grouped(rows, "region", "sales", schema.SumAgg)
	assert.Equal(t, schema.UnknownLabel, got[0].Dimension)
	assert.Equal(t, 12.0, got[0].Value)
}

func TestDistinctValues(t *testing.T) {
	rows := []schema.Row{
		{"product": "Widget"},
		{"product": "Gadget"},
		{"product": "Widget"},
		{"product": nil},
	}
	got := DistinctValues(rows, "product")
	assert.Equal(t, []string{"Widget", "Gadget", schema.UnknownLabel}, got)
}
