package tools

import (
	"context"
	"fmt"

	"github.com/loomworks/loom/internal/scan"
	"github.com/mark3labs/mcp-go/mcp"
)

// BudgetTool handles the context_estimate MCP tool.
type BudgetTool struct{}

// NewBudgetTool creates a BudgetTool.
func NewBudgetTool() *BudgetTool {
	return &BudgetTool{}
}

// Definition returns the MCP tool definition for context_estimate.
func (t *BudgetTool) Definition() mcp.Tool {
	return mcp.NewTool("context_estimate",
		mcp.WithDescription(
			"Estimate the token count of text (len/4 heuristic) and classify it "+
				"against a context budget.",
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The text to estimate"),
		),
		mcp.WithNumber("budget",
			mcp.Description(fmt.Sprintf("Token budget to classify against (default: %d)", scan.DefaultTokenBudget)),
		),
	)
}

// Handle processes the context_estimate tool call.
func (t *BudgetTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := req.GetString("text", "")
	if text == "" {
		return mcp.NewToolResultError("'text' is required"), nil
	}
	budget := intArg(req, "budget", scan.DefaultTokenBudget)

	tokens := scan.EstimateTokens(text)
	verdict := scan.BudgetVerdict(tokens, budget)

	return mcp.NewToolResultText(fmt.Sprintf("~%d tokens (budget %d): %s", tokens, budget, verdict)), nil
}
