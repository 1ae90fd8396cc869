package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/loomworks/loom/internal/prefs"
	"github.com/mark3labs/mcp-go/mcp"
)

// PatternTool handles the add_pattern MCP tool.
type PatternTool struct {
	store prefs.Store
}

// NewPatternTool creates a PatternTool.
func NewPatternTool(store prefs.Store) *PatternTool {
	return &PatternTool{store: store}
}

// Definition returns the MCP tool definition for add_pattern.
func (t *PatternTool) Definition() mcp.Tool {
	return mcp.NewTool("add_pattern",
		mcp.WithDescription(
			"Register a new architectural pattern for this workspace.",
		),
		mcp.WithString("pattern_type",
			mcp.Required(),
			mcp.Description("Pattern category (e.g. 'repository', 'event-sourcing')"),
		),
		mcp.WithString("pattern_data",
			mcp.Required(),
			mcp.Description("Description of the pattern and how it applies"),
		),
	)
}

// Handle processes the add_pattern tool call.
func (t *PatternTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	patternType := req.GetString("pattern_type", "")
	patternData := req.GetString("pattern_data", "")

	if patternType == "" {
		return mcp.NewToolResultError("'pattern_type' is required"), nil
	}
	if patternData == "" {
		return mcp.NewToolResultError("'pattern_data' is required"), nil
	}

	p, err := t.store.Load()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load preferences: %v", err)), nil
	}
	p.AddPattern(patternType, patternData, time.Now().UTC())
	if err := t.store.Save(p); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save pattern: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Pattern %s added: %s", patternType, patternData)), nil
}
