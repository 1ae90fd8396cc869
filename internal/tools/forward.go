package tools

import (
	"context"
	"fmt"

	"github.com/loomworks/loom/internal/infer"
	"github.com/mark3labs/mcp-go/mcp"
)

// ForwardTool handles the forward_prompt MCP tool. It is only registered
// when the inference endpoint is configured.
type ForwardTool struct {
	client *infer.Client
}

// NewForwardTool creates a ForwardTool.
func NewForwardTool(client *infer.Client) *ForwardTool {
	return &ForwardTool{client: client}
}

// Definition returns the MCP tool definition for forward_prompt.
func (t *ForwardTool) Definition() mcp.Tool {
	return mcp.NewTool("forward_prompt",
		mcp.WithDescription(
			"Forward a prompt to the configured inference endpoint and return the reply verbatim.",
		),
		mcp.WithString("prompt",
			mcp.Required(),
			mcp.Description("The prompt to forward"),
		),
	)
}

// Handle processes the forward_prompt tool call.
func (t *ForwardTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prompt := req.GetString("prompt", "")
	if prompt == "" {
		return mcp.NewToolResultError("'prompt' is required"), nil
	}

	reply, err := t.client.Forward(ctx, prompt)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("inference failed: %v", err)), nil
	}
	return mcp.NewToolResultText(reply), nil
}
