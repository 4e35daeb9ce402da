package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/sprintchart/burndown/core"
	"github.com/sprintchart/burndown/internal/contract"
	"github.com/sprintchart/burndown/schema"
)

// maxGuidelineDays caps the window get_guideline will project over.
const maxGuidelineDays = 366

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	store   contract.SnapshotStore
	now     func() time.Time
}

func (h *toolHandler) today() schema.Date {
	now := time.Now
	if h.now != nil {
		now = h.now
	}
	return h.baseCfg.Today(now())
}

func (h *toolHandler) handleGetBurndown(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	asOf := h.today()
	if s := request.GetString("date", ""); s != "" {
		d, err := schema.ParseDate(s)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid date: %v", err)), nil
		}
		asOf = d
	}

	opts := core.AssembleOptions{
		Lenient: request.GetBool("lenient", h.baseCfg.Lenient),
		Workers: h.baseCfg.Workers,
	}
	report, err := core.BuildSeriesReport(ctx, h.store, asOf, opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("series failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetGuideline(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	goal, err := request.RequireFloat("goal")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	start, err := schema.ParseDate(request.GetString("start", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid start: %v", err)), nil
	}
	end, err := schema.ParseDate(request.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid end: %v", err)), nil
	}

	if days := end.DaysSince(start); days > maxGuidelineDays {
		return mcp.NewToolResultError(fmt.Sprintf("sprint window of %d days exceeds the %d day limit", days, maxGuidelineDays)), nil
	}

	guideline, err := core.ProjectGuideline(goal, start, end)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("guideline failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(guideline, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetStoreStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status, err := h.store.GetStatus()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("status failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(status, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
