package strandtools

import (
	"context"
	"fmt"

	"github.com/loomworks/loom/internal/strand"
	"github.com/mark3labs/mcp-go/mcp"
)

// BranchTool handles the strand_branch MCP tool.
type BranchTool struct {
	repo *strand.Repo
}

// NewBranchTool creates a BranchTool.
func NewBranchTool(repo *strand.Repo) *BranchTool {
	return &BranchTool{repo: repo}
}

// Definition returns the MCP tool definition for strand_branch.
func (t *BranchTool) Definition() mcp.Tool {
	return mcp.NewTool("strand_branch",
		mcp.WithDescription(
			"Fork a new reasoning strand from an existing one. The branch inherits the source's "+
				"full thought history plus one new thought, and records its lineage. The source may be "+
				"active or completed; it is never modified.",
		),
		mcp.WithString("source_strand_id",
			mcp.Required(),
			mcp.Description("Id of the strand to fork from (active or completed)"),
		),
		mcp.WithString("branch_topic",
			mcp.Required(),
			mcp.Description("Topic for the new branch"),
		),
		mcp.WithString("branch_thought",
			mcp.Required(),
			mcp.Description("The first new thought, appended after the inherited history"),
		),
	)
}

// Handle processes the strand_branch tool call.
func (t *BranchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sourceID := req.GetString("source_strand_id", "")
	topic := req.GetString("branch_topic", "")
	thought := req.GetString("branch_thought", "")

	if sourceID == "" {
		return mcp.NewToolResultError("'source_strand_id' is required"), nil
	}
	if topic == "" {
		return mcp.NewToolResultError("'branch_topic' is required"), nil
	}
	if thought == "" {
		return mcp.NewToolResultError("'branch_thought' is required"), nil
	}

	branch, err := t.repo.Branch(sourceID, topic, thought)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Branch created: %s (topic: %q, %d thoughts, branched from %s)",
		branch.ID, branch.Topic, len(branch.Thoughts), branch.BranchedFrom,
	)), nil
}
