// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sprintchart/burndown/internal/contract"
)

// NewMCPServer initializes and configures the burndown MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, store contract.SnapshotStore) *server.MCPServer {
	s := server.NewMCPServer(
		"Burndown Sprint Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		store:   store,
	}

	// --- 1. Tool: get_burndown ---
	s.AddTool(mcp.NewTool("get_burndown",
		mcp.WithDescription("Rebuild the burndown series and guideline of the sprint active on a date from stored snapshots."),
		mcp.WithString("date", mcp.Description("Report date as YYYYMMDD or YYYY-MM-DD (defaults to today).")),
		mcp.WithBoolean("lenient", mcp.Description("Report missing days as gaps instead of failing.")),
	), h.handleGetBurndown)

	// --- 2. Tool: get_guideline ---
	s.AddTool(mcp.NewTool("get_guideline",
		mcp.WithDescription("Project the ideal linear burn for a sprint goal between two dates."),
		mcp.WithNumber("goal", mcp.Description("Sprint goal in story points."), mcp.Required()),
		mcp.WithString("start", mcp.Description("Sprint start date."), mcp.Required()),
		mcp.WithString("end", mcp.Description("Sprint end date, at most 366 days after start."), mcp.Required()),
	), h.handleGetGuideline)

	// --- 3. Tool: get_store_status ---
	s.AddTool(mcp.NewTool("get_store_status",
		mcp.WithDescription("Report the snapshot store backend, entry count and date range."),
	), h.handleGetStoreStatus)

	return s
}

// StartMCPServer starts the burndown MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, store contract.SnapshotStore) error {
	s := NewMCPServer(baseCfg, store)
	return server.ServeStdio(s)
}
