package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/loomworks/loom/internal/metrics"
	"github.com/mark3labs/mcp-go/mcp"
)

// UsageTool handles the usage_stats MCP tool.
type UsageTool struct {
	recorder *metrics.Recorder
}

// NewUsageTool creates a UsageTool. A nil recorder is valid: stats simply
// come back empty when metrics are disabled.
func NewUsageTool(recorder *metrics.Recorder) *UsageTool {
	return &UsageTool{recorder: recorder}
}

// Definition returns the MCP tool definition for usage_stats.
func (t *UsageTool) Definition() mcp.Tool {
	return mcp.NewTool("usage_stats",
		mcp.WithDescription(
			"Show tool usage statistics for this server: total calls, errors, and per-tool counts.",
		),
	)
}

// Handle processes the usage_stats tool call.
func (t *UsageTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := t.recorder.Stats()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read stats: %v", err)), nil
	}

	if stats.TotalCalls == 0 {
		return mcp.NewToolResultText("No tool calls recorded yet."), nil
	}

	var b strings.Builder
	b.WriteString("## Usage Statistics\n\n")
	fmt.Fprintf(&b, "- **Total calls**: %d\n", stats.TotalCalls)
	fmt.Fprintf(&b, "- **Errors**: %d\n\n", stats.TotalErrors)
	for _, tc := range stats.ByTool {
		fmt.Fprintf(&b, "- %s: %d calls (%d errors)\n", tc.Tool, tc.Calls, tc.Errors)
	}
	return mcp.NewToolResultText(b.String()), nil
}
