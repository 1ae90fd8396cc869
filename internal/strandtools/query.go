package strandtools

import (
	"context"
	"fmt"
	"strings"

	"github.com/loomworks/loom/internal/strand"
	"github.com/mark3labs/mcp-go/mcp"
)

// GetTool handles the strand_get MCP tool.
type GetTool struct {
	repo *strand.Repo
}

// NewGetTool creates a GetTool.
func NewGetTool(repo *strand.Repo) *GetTool {
	return &GetTool{repo: repo}
}

// Definition returns the MCP tool definition for strand_get.
func (t *GetTool) Definition() mcp.Tool {
	return mcp.NewTool("strand_get",
		mcp.WithDescription(
			"Read one reasoning strand in full — topic, every thought in order, lineage, "+
				"and the conclusion if the strand has been completed.",
		),
		mcp.WithString("strand_id",
			mcp.Required(),
			mcp.Description("Id of the strand to read (active or completed)"),
		),
	)
}

// Handle processes the strand_get tool call.
func (t *GetTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("strand_id", "")
	if id == "" {
		return mcp.NewToolResultError("'strand_id' is required"), nil
	}

	s, err := t.repo.Get(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatStrand(s)), nil
}

// ─── ListTool ───────────────────────────────────────────────────────────────

// ListTool handles the strand_list MCP tool.
type ListTool struct {
	repo *strand.Repo
}

// NewListTool creates a ListTool.
func NewListTool(repo *strand.Repo) *ListTool {
	return &ListTool{repo: repo}
}

// Definition returns the MCP tool definition for strand_list.
func (t *ListTool) Definition() mcp.Tool {
	return mcp.NewTool("strand_list",
		mcp.WithDescription(
			"List reasoning strands with id, topic, thought count, and status, in creation order.",
		),
		mcp.WithString("status",
			mcp.Description("Filter by lifecycle state: active, completed, or all (default: all)"),
		),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Max results (default: %d)", strand.DefaultListLimit)),
		),
	)
}

// Handle processes the strand_list tool call.
func (t *ListTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status := req.GetString("status", strand.StatusAll)
	limit := intArg(req, "limit", strand.DefaultListLimit)

	strands, err := t.repo.List(status, limit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(strands) == 0 {
		return mcp.NewToolResultText("No strands found."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d strands:\n\n", len(strands))
	for _, s := range strands {
		fmt.Fprintf(&b, "- %s\n", summaryLine(s))
	}
	return mcp.NewToolResultText(b.String()), nil
}
