package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tabletalk/tabletalk/core/agg"
	"github.com/tabletalk/tabletalk/schema"
)

func TestNarrateScalar(t *testing.T) {
	val := agg.ScalarValue{Num: 1234.5, Numeric: true}

	got := NarrateScalar("total sales", schema.SumAgg, "sales", val)
	assert.Equal(t, "The Total Sales is **1234.50**.", got)

	got = NarrateScalar("average sales in 2023", schema.AvgAgg, "sales", val)
	assert.Equal(t, "The Average Sales in 2023 is **1234.50**.", got)

	got = NarrateScalar("how many rows", schema.CountAgg, "", agg.ScalarValue{Num: 42, Numeric: true})
	assert.Equal(t, "The total count is **42**.", got)

	// Non-numeric extreme keeps its text form.
	got = NarrateScalar("max code", schema.MaxAgg, "code", agg.ScalarValue{Text: "beta"})
	assert.Equal(t, "The Top Code is **beta**.", got)
}

func TestNarrateGrouped(t *testing.T) {
	rows := []schema.AggRow{
		{Dimension: "West", Value: 120},
		{Dimension: "East", Value: 80},
	}

	got := NarrateGrouped("total sales by region", schema.SumAgg, "sales", "region", rows)
	assert.Equal(t, "Here is the **Total Sales by Region**. West leads with **120**.", got)

	got = NarrateGrouped("lowest sales by region", schema.MinAgg, "sales", "region", rows)
	assert.Contains(t, got, "East has the lowest value at **80**.")

	// Count without a metric narrates over records.
	got = NarrateGrouped("count by region", schema.CountAgg, "", "region", rows)
	assert.Contains(t, got, "**Count of Records by Region**")
}

func TestNarrateList(t *testing.T) {
	got := NarrateList("region", []string{"West", "East"})
	assert.Equal(t, "Found 2 distinct Region values: West, East.", got)
}

func TestNarrateListTruncation(t *testing.T) {
	var values []string
	for i := 0; i < schema.MaxListValues+5; i++ {
		values = append(values, fmt.Sprintf("v%d", i))
	}
	got := NarrateList("customer", values)
	assert.Contains(t, got, fmt.Sprintf("Found %d distinct Customer values", len(values)))
	assert.Contains(t, got, "and 5 more…")
}

func TestNarrateEmptyFilter(t *testing.T) {
	assert.Equal(t, "No rows matched your question.", NarrateEmptyFilter(nil))

	got := NarrateEmptyFilter(map[string]string{"product": "widget", "region": "west"})
	assert.Equal(t, `No rows matched the filters product ~ "widget", region ~ "west".`, got)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "42", FormatValue(42))
	assert.Equal(t, "42.50", FormatValue(42.5))
	assert.Equal(t, "0", FormatValue(0))
	assert.Equal(t, "-3", FormatValue(-3))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Order Date", titleCase("order_date"))
	assert.Equal(t, "Total Sales", titleCase("total-sales"))
	assert.Equal(t, "Region", titleCase("region"))
}
