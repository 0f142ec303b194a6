package mcp_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tabletalk/tabletalk/internal/contract"
	mcp_internal "github.com/tabletalk/tabletalk/internal/mcp"
	"github.com/tabletalk/tabletalk/schema"
)

// memStore serves a fixed dataset so handlers can be exercised without disk.
type memStore struct {
	id string
	ds *schema.Dataset
}

func (m *memStore) Resolve(_ context.Context, name string) (string, error) {
	if name == m.id || name+".csv" == m.id {
		return m.id, nil
	}
	return "", nil
}

func (m *memStore) Fetch(_ context.Context, id string, _ int) (*schema.Dataset, error) {
	if id != m.id {
		return nil, nil
	}
	return m.ds, nil
}

func (m *memStore) List(_ context.Context) ([]string, error) {
	return []string{m.id}, nil
}

func newTestStore() *memStore {
	ds := schema.NewDataset([]schema.Row{
		{"region": "West", "channel": "online", "sales": 120.0},
		{"region": "East", "channel": "retail", "sales": 80.0},
	})
	return &memStore{id: "sales.csv", ds: ds}
}

func TestMCPServerHandlers(t *testing.T) {
	baseCfg := &contract.Config{RowLimit: schema.MaxFetchRows}
	s := mcp_internal.NewMCPServer(baseCfg, newTestStore())

	ctx := context.Background()

	t.Run("ask_dataset answers a grouped question", func(t *testing.T) {
		tool := s.GetTool("ask_dataset")
		require.NotNil(t, tool, "Tool ask_dataset should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "ask_dataset",
				Arguments: map[string]any{
					"question": "total sales by region",
					"dataset":  "sales",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError)
		text := res.Content[0].(mcp.TextContent).Text
		assert.Contains(t, text, "Total Sales by Region")
		assert.Contains(t, text, "West")
	})

	t.Run("ask_dataset normalizes a pivoted breakdown", func(t *testing.T) {
		tool := s.GetTool("ask_dataset")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "ask_dataset",
				Arguments: map[string]any{
					"question":  "total sales by region",
					"dataset":   "sales",
					"breakdown": "channel",
					"normalize": true,
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError)

		var resp schema.AnalyticalResponse
		require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &resp))
		require.NotNil(t, resp.Chart)
		require.Len(t, resp.Chart.Series, 2)
		for i := range resp.Chart.Categories {
			var sum float64
			for _, series := range resp.Chart.Series {
				sum += series.Data[i]
			}
			assert.InDelta(t, 100, sum, 1e-9)
		}
	})

	t.Run("ask_dataset degrades on unknown dataset", func(t *testing.T) {
		tool := s.GetTool("ask_dataset")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "ask_dataset",
				Arguments: map[string]any{
					"question": "total sales by region",
					"dataset":  "nope",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "soft failures should not surface as handler errors")
		assert.False(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "could not be answered")
	})

	t.Run("list_datasets returns store contents", func(t *testing.T) {
		tool := s.GetTool("list_datasets")
		require.NotNil(t, tool, "Tool list_datasets should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{Name: "list_datasets"},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "sales.csv")
	})
}
