package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tabletalk/tabletalk/schema"
)

func TestLooksFinancial(t *testing.T) {
	assert.True(t, LooksFinancial("sales"))
	assert.True(t, LooksFinancial("Total_Revenue"))
	assert.True(t, LooksFinancial("profit_margin"))
	assert.False(t, LooksFinancial("customer"))
	assert.False(t, LooksFinancial(""))
}

func TestAutoDimensionPrefersTimeColumns(t *testing.T) {
	ds := schema.NewDatasetWithColumns(
		[]string{"region", "order_date", "sales"},
		[]schema.Row{{"region": "West", "order_date": "2024-01-05", "sales": 1.0}},
	)
	assert.Equal(t, "order_date", AutoDimension(ds))
}

func TestAutoDimensionCategoricalHints(t *testing.T) {
	ds := schema.NewDatasetWithColumns(
		[]string{"notes", "category", "sales"},
		[]schema.Row{{"notes": "hello", "category": "toys", "sales": 1.0}},
	)
	assert.Equal(t, "category", AutoDimension(ds))
}

func TestAutoDimensionFirstShortStringColumn(t *testing.T) {
	ds := schema.NewDatasetWithColumns(
		[]string{"image_url", "name", "sales"},
		[]schema.Row{{"image_url": "https://example.com/x.png", "name": "Widget", "sales": 1.0}},
	)
	assert.Equal(t, "name", AutoDimension(ds))
}

func TestAutoDimensionRejectsLongValues(t *testing.T) {
	ds := schema.NewDatasetWithColumns(
		[]string{"description", "sales"},
		[]schema.Row{{"description": strings.Repeat("long text ", 10), "sales": 1.0}},
	)
	assert.Equal(t, "", AutoDimension(ds))
}
