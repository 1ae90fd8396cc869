package strandtools

import (
	"context"
	"fmt"

	"github.com/loomworks/loom/internal/strand"
	"github.com/mark3labs/mcp-go/mcp"
)

// CreateTool handles the strand_create MCP tool.
type CreateTool struct {
	repo *strand.Repo
}

// NewCreateTool creates a CreateTool with the given strand repository.
func NewCreateTool(repo *strand.Repo) *CreateTool {
	return &CreateTool{repo: repo}
}

// Definition returns the MCP tool definition for strand_create.
func (t *CreateTool) Definition() mcp.Tool {
	return mcp.NewTool("strand_create",
		mcp.WithDescription(
			"Start a new reasoning strand — a named, persistent chain of thought. "+
				"Use this when beginning to reason through a problem you may want to resume, branch, or search later.",
		),
		mcp.WithString("topic",
			mcp.Required(),
			mcp.Description("Short label for the reasoning session (e.g. 'Bug triage', 'Cache eviction design')"),
		),
		mcp.WithString("initial_thought",
			mcp.Required(),
			mcp.Description("The first reasoning step — every strand starts with at least one thought"),
		),
	)
}

// Handle processes the strand_create tool call.
func (t *CreateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic := req.GetString("topic", "")
	initial := req.GetString("initial_thought", "")

	if topic == "" {
		return mcp.NewToolResultError("'topic' is required"), nil
	}
	if initial == "" {
		return mcp.NewToolResultError("'initial_thought' is required"), nil
	}

	s, err := t.repo.Create(topic, initial)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create strand: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Strand created: %s (topic: %q, 1 thought)", s.ID, s.Topic)), nil
}
