package strandtools

import (
	"context"
	"fmt"

	"github.com/loomworks/loom/internal/strand"
	"github.com/mark3labs/mcp-go/mcp"
)

// AppendTool handles the strand_append MCP tool.
type AppendTool struct {
	repo *strand.Repo
}

// NewAppendTool creates an AppendTool.
func NewAppendTool(repo *strand.Repo) *AppendTool {
	return &AppendTool{repo: repo}
}

// Definition returns the MCP tool definition for strand_append.
func (t *AppendTool) Definition() mcp.Tool {
	return mcp.NewTool("strand_append",
		mcp.WithDescription(
			"Add a thought to an active reasoning strand. "+
				"Fails if the strand has already been completed — completed strands are frozen.",
		),
		mcp.WithString("strand_id",
			mcp.Required(),
			mcp.Description("Id of the active strand (e.g. 'strand_3')"),
		),
		mcp.WithString("thought",
			mcp.Required(),
			mcp.Description("The next reasoning step to record"),
		),
	)
}

// Handle processes the strand_append tool call.
func (t *AppendTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("strand_id", "")
	thought := req.GetString("thought", "")

	if id == "" {
		return mcp.NewToolResultError("'strand_id' is required"), nil
	}
	if thought == "" {
		return mcp.NewToolResultError("'thought' is required"), nil
	}

	s, err := t.repo.Append(id, thought)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Thought added to %s (%d thoughts total)", s.ID, len(s.Thoughts))), nil
}
