package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/tabletalk/tabletalk/core"
	"github.com/tabletalk/tabletalk/internal/contract"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	store   contract.DatasetStore
}

func (h *toolHandler) handleAskDataset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	question := request.GetString("question", "")
	dataset := request.GetString("dataset", "")
	if l := request.GetInt("row_limit", 0); l > 0 {
		cfg.RowLimit = l
	}
	if b := request.GetString("breakdown", ""); b != "" {
		cfg.Breakdowns = []string{b}
	}
	if request.GetBool("normalize", false) {
		cfg.Normalize = true
	}

	engine := core.New(h.store, core.WithRowLimit(cfg.RowLimit))
	resp, err := engine.AnalyzeWithOptions(ctx, question, dataset, nil, core.Options{
		FullView:   cfg.FullView,
		Breakdowns: cfg.Breakdowns,
		Normalize:  cfg.Normalize,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	if resp == nil {
		return mcp.NewToolResultText("The question could not be answered from this dataset."), nil
	}

	jsonData, _ := json.MarshalIndent(resp, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListDatasets(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names, err := h.store.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(names, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
