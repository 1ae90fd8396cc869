package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/loomworks/loom/internal/prefs"
	"github.com/mark3labs/mcp-go/mcp"
)

// GetPreferencesTool handles the get_preferences MCP tool.
type GetPreferencesTool struct {
	store prefs.Store
}

// NewGetPreferencesTool creates a GetPreferencesTool.
func NewGetPreferencesTool(store prefs.Store) *GetPreferencesTool {
	return &GetPreferencesTool{store: store}
}

// Definition returns the MCP tool definition for get_preferences.
func (t *GetPreferencesTool) Definition() mcp.Tool {
	return mcp.NewTool("get_preferences",
		mcp.WithDescription(
			"Retrieve the stored user preferences and registered architectural patterns.",
		),
	)
}

// Handle processes the get_preferences tool call.
func (t *GetPreferencesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := t.store.Load()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load preferences: %v", err)), nil
	}

	var b strings.Builder
	b.WriteString("## User Preferences\n\n")
	fmt.Fprintf(&b, "- **Communication style**: %s\n", p.CommunicationStyle)
	if p.WorkspaceRoot != "" {
		fmt.Fprintf(&b, "- **Workspace root**: %s\n", p.WorkspaceRoot)
	}
	fmt.Fprintf(&b, "- **Command chaining**: %v\n", p.CommandChaining)
	fmt.Fprintf(&b, "- **Aesthetic**: %s\n", p.Aesthetic)

	for key, value := range p.Extra {
		fmt.Fprintf(&b, "- **%s** (extension): %s\n", key, value)
	}

	if len(p.Patterns) > 0 {
		fmt.Fprintf(&b, "\n## Patterns (%d)\n\n", len(p.Patterns))
		for _, pat := range p.Patterns {
			fmt.Fprintf(&b, "- [%s] %s\n", pat.Type, pat.Data)
		}
	}

	return mcp.NewToolResultText(b.String()), nil
}

// ─── UpdatePreferencesTool ──────────────────────────────────────────────────

// UpdatePreferencesTool handles the update_preferences MCP tool.
type UpdatePreferencesTool struct {
	store prefs.Store
}

// NewUpdatePreferencesTool creates an UpdatePreferencesTool.
func NewUpdatePreferencesTool(store prefs.Store) *UpdatePreferencesTool {
	return &UpdatePreferencesTool{store: store}
}

// Definition returns the MCP tool definition for update_preferences.
func (t *UpdatePreferencesTool) Definition() mcp.Tool {
	return mcp.NewTool("update_preferences",
		mcp.WithDescription(
			"Set a user preference. Known fields (communication_style, workspace_root, "+
				"command_chaining, aesthetic) update directly; any other field name is stored "+
				"in the explicit extension map.",
		),
		mcp.WithString("field",
			mcp.Required(),
			mcp.Description("Preference field name"),
		),
		mcp.WithString("value",
			mcp.Required(),
			mcp.Description("New value for the field"),
		),
	)
}

// Handle processes the update_preferences tool call.
func (t *UpdatePreferencesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	field := req.GetString("field", "")
	value := req.GetString("value", "")

	if field == "" {
		return mcp.NewToolResultError("'field' is required"), nil
	}
	if value == "" {
		return mcp.NewToolResultError("'value' is required"), nil
	}

	p, err := t.store.Load()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load preferences: %v", err)), nil
	}

	extension := p.Apply(field, value)
	if err := t.store.Save(p); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save preferences: %v", err)), nil
	}

	if extension {
		return mcp.NewToolResultText(fmt.Sprintf("Preference %q stored in the extension map: %s", field, value)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Preference %q updated: %s", field, value)), nil
}
