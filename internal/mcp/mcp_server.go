// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/tabletalk/tabletalk/internal/contract"
)

// NewMCPServer initializes and configures the TableTalk MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, store contract.DatasetStore) *server.MCPServer {
	s := server.NewMCPServer(
		"TableTalk Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		store:   store,
	}

	// --- 1. Tool: ask_dataset ---
	s.AddTool(mcp.NewTool("ask_dataset",
		mcp.WithDescription("Answer a natural-language analytical question about a tabular dataset."),
		mcp.WithString("question", mcp.Description("The analytical question, e.g. 'total sales by region'."), mcp.Required()),
		mcp.WithString("dataset", mcp.Description("Dataset name to query (e.g. 'sales' or 'sales.csv')."), mcp.Required()),
		mcp.WithNumber("row_limit", mcp.Description("Maximum number of rows to read from the dataset.")),
		mcp.WithString("breakdown", mcp.Description("Optional secondary dimension for a pivoted breakdown.")),
		mcp.WithBoolean("normalize", mcp.Description("Rescale pivoted breakdowns so each category sums to 100 (100%-stacked).")),
	), h.handleAskDataset)

	// --- 2. Tool: list_datasets ---
	s.AddTool(mcp.NewTool("list_datasets",
		mcp.WithDescription("List the dataset files available for analytical questions."),
	), h.handleListDatasets)

	return s
}

// StartMCPServer starts the TableTalk MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, store contract.DatasetStore) error {
	s := NewMCPServer(baseCfg, store)
	return server.ServeStdio(s)
}
