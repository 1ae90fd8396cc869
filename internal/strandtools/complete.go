package strandtools

import (
	"context"
	"fmt"

	"github.com/loomworks/loom/internal/strand"
	"github.com/mark3labs/mcp-go/mcp"
)

// CompleteTool handles the strand_complete MCP tool.
type CompleteTool struct {
	repo *strand.Repo
}

// NewCompleteTool creates a CompleteTool.
func NewCompleteTool(repo *strand.Repo) *CompleteTool {
	return &CompleteTool{repo: repo}
}

// Definition returns the MCP tool definition for strand_complete.
func (t *CompleteTool) Definition() mcp.Tool {
	return mcp.NewTool("strand_complete",
		mcp.WithDescription(
			"Conclude an active reasoning strand with a final conclusion. "+
				"Completion is one-way: the strand freezes and no further thoughts can be appended.",
		),
		mcp.WithString("strand_id",
			mcp.Required(),
			mcp.Description("Id of the active strand to conclude"),
		),
		mcp.WithString("conclusion",
			mcp.Required(),
			mcp.Description("The final conclusion reached by this chain of thought"),
		),
	)
}

// Handle processes the strand_complete tool call.
func (t *CompleteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("strand_id", "")
	conclusion := req.GetString("conclusion", "")

	if id == "" {
		return mcp.NewToolResultError("'strand_id' is required"), nil
	}
	if conclusion == "" {
		return mcp.NewToolResultError("'conclusion' is required"), nil
	}

	s, err := t.repo.Complete(id, conclusion)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Strand %s completed.\nConclusion: %s", s.ID, s.Conclusion)), nil
}
