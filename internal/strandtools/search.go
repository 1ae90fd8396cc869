package strandtools

import (
	"context"
	"fmt"
	"strings"

	"github.com/loomworks/loom/internal/strand"
	"github.com/mark3labs/mcp-go/mcp"
)

// SearchTool handles the strand_search MCP tool.
type SearchTool struct {
	repo *strand.Repo
}

// NewSearchTool creates a SearchTool.
func NewSearchTool(repo *strand.Repo) *SearchTool {
	return &SearchTool{repo: repo}
}

// Definition returns the MCP tool definition for strand_search.
func (t *SearchTool) Definition() mcp.Tool {
	return mcp.NewTool("strand_search",
		mcp.WithDescription(
			"Search all reasoning strands — topics, thoughts, and conclusions — by substring. "+
				"Topic matches rank first; within a tier, newest strands come first. "+
				"Each result is tagged with what matched (topic, content, or conclusion).",
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Text to look for (case-insensitive substring)"),
		),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Max results (default: %d)", strand.DefaultSearchLimit)),
		),
	)
}

// Handle processes the strand_search tool call.
func (t *SearchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	if query == "" {
		return mcp.NewToolResultError("'query' is required"), nil
	}
	limit := intArg(req, "limit", strand.DefaultSearchLimit)

	matches, err := t.repo.Search(query, limit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(matches) == 0 {
		return mcp.NewToolResultText("No strands match your query."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d matches:\n\n", len(matches))
	for i, m := range matches {
		fmt.Fprintf(&b, "[%d] %s (matched: %s)\n", i+1, summaryLine(m.Strand), m.Kind)
	}
	return mcp.NewToolResultText(b.String()), nil
}
