package agg

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tabletalk/tabletalk/schema"
)

func TestPivotRows(t *testing.T) {
	rows := []schema.Row{
		{"month": "Jan", "region": "West", "sales": 10.0},
		{"month": "Jan", "region": "East", "sales": 20.0},
		{"month": "Feb", "region": "West", "sales": 30.0},
	}

	p := PivotRows(rows, "month", []string{"region"}, "sales", schema.SumAgg)

	assert.Equal(t, []string{"Jan", "Feb"}, p.Categories)
	require.Len(t, p.Series, 2)
	assert.Equal(t, "West", p.Series[0].Name)
	assert.Equal(t, []float64{10, 30}, p.Series[0].Data)
	// Missing East/Feb cell stays zero
	assert.Equal(t, []float64{20, 0}, p.Series[1].Data)
}

func TestPivotRowsCompositeKey(t *testing.T) {
	rows := []schema.Row{
		{"month": "Jan", "region": "West", "channel": "Web", "sales": 10.0},
	}

	p := PivotRows(rows, "month", []string{"region", "channel"}, "sales", schema.SumAgg)
	require.Len(t, p.Series, 1)
	assert.Equal(t, "West | Web", p.Series[0].Name)
}

func TestPivotRowsCountWithoutMetric(t *testing.T) {
	rows := []schema.Row{
		{"month": "Jan", "region": "West"},
		{"month": "Jan", "region": "West"},
		{"month": "Feb", "region": "West"},
	}
	p := PivotRows(rows, "month", []string{"region"}, "", schema.SumAgg)
	assert.Equal(t, []float64{2, 1}, p.Series[0].Data)
}

func TestNormalize(t *testing.T) {
	p := Pivot{
		Categories: []string{"Jan", "Feb"},
		Series: []schema.Series{
			{Name: "West", Data: []float64{30, 0}},
			{Name: "East", Data: []float64{10, 0}},
		},
	}

	n := Normalize(p)
	assert.InDelta(t, 75, n.Series[0].Data[0], 1e-9)
	assert.InDelta(t, 25, n.Series[1].Data[0], 1e-9)

	// Zero-total categories stay zero instead of dividing by zero
	assert.Equal(t, 0.0, n.Series[0].Data[1])

	// Each category with data sums to 100
	total := n.Series[0].Data[0] + n.Series[1].Data[0]
	assert.InDelta(t, 100, total, 1e-9)
}

func TestBucketTopN(t *testing.T) {
	var rows []schema.AggRow
	for i := 0; i < 14; i++ {
		rows = append(rows, schema.AggRow{
			Dimension: fmt.Sprintf("cat%02d", i),
			Value:     float64(i + 1),
		})
	}

	got := BucketTopN(rows, false)
	require.Len(t, got, schema.TopNBuckets+1)

	last := got[len(got)-1]
	assert.Equal(t, schema.OthersLabel, last.Dimension)
	// Four smallest values: 1+2+3+4
	assert.Equal(t, 10.0, last.Value)

	// Total mass is preserved
	var before, after float64
	for _, r := range rows {
		before += r.Value
	}
	for _, r := range got {
		after += r.Value
	}
	assert.InDelta(t, before, after, 1e-9)
}

func TestBucketTopNSmallInputUnchanged(t *testing.T) {
	rows := []schema.AggRow{{Dimension: "a", Value: 1}, {Dimension: "b", Value: 2}}
	got := BucketTopN(rows, false)
	assert.Equal(t, rows, got)
}

func TestBucketTopNFullView(t *testing.T) {
	var rows []schema.AggRow
	for i := 0; i < 30; i++ {
		rows = append(rows, schema.AggRow{Dimension: fmt.Sprintf("c%d", i), Value: float64(i)})
	}
	got := BucketTopN(rows, true)
	assert.Len(t, got, 30)
}
