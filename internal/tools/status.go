package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/loomworks/loom/internal/strand"
	"github.com/mark3labs/mcp-go/mcp"
)

// StatusTool handles the arch_status MCP tool: a one-shot overview of the
// server version, the ledger counts, and which optional subsystems are up.
type StatusTool struct {
	repo           *strand.Repo
	version        string
	metricsEnabled bool
	inferEnabled   bool
}

// NewStatusTool creates a StatusTool.
func NewStatusTool(repo *strand.Repo, version string, metricsEnabled, inferEnabled bool) *StatusTool {
	return &StatusTool{
		repo:           repo,
		version:        version,
		metricsEnabled: metricsEnabled,
		inferEnabled:   inferEnabled,
	}
}

// Definition returns the MCP tool definition for arch_status.
func (t *StatusTool) Definition() mcp.Tool {
	return mcp.NewTool("arch_status",
		mcp.WithDescription(
			"Get the current server status: version, strand counts, and subsystem health.",
		),
	)
}

// Handle processes the arch_status tool call.
func (t *StatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	active, completed, counter, err := t.repo.Stats()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read ledger: %v", err)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Loom v%s operational.\n\n", t.version)
	fmt.Fprintf(&b, "Strands: %d active, %d completed (%d ids issued)\n", active, completed, counter)
	fmt.Fprintf(&b, "Metrics: %s\n", onOff(t.metricsEnabled))
	fmt.Fprintf(&b, "Inference pass-through: %s\n", onOff(t.inferEnabled))
	return mcp.NewToolResultText(b.String()), nil
}

func onOff(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
