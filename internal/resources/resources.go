// Package resources implements MCP resource handlers.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (loom://..., config://...) following MCP
// conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/loomworks/loom/internal/strand"
	"github.com/mark3labs/mcp-go/mcp"
)

// componentConfigs maps component names to their configuration summaries.
var componentConfigs = map[string]string{
	"accuracy": "Professional accuracy protocol active",
	"tools":    "Tool safety enforcement active",
	"memory":   "Strand ledger persistence operational",
	"mcp":      "Transport: stdio, line-delimited JSON-RPC 2.0",
}

// Handler manages the server's resource endpoints.
type Handler struct {
	repo *strand.Repo
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(repo *strand.Repo) *Handler {
	return &Handler{repo: repo}
}

// ConfigTemplate returns the MCP resource template for component configs.
func (h *Handler) ConfigTemplate() mcp.ResourceTemplate {
	return mcp.NewResourceTemplate(
		"config://{component}",
		"Component Configuration",
		mcp.WithTemplateDescription("Configuration summary for a server component (accuracy, tools, memory, mcp)"),
		mcp.WithTemplateMIMEType("text/plain"),
	)
}

// HandleConfig resolves a config://{component} read.
func (h *Handler) HandleConfig(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	component := strings.TrimPrefix(req.Params.URI, "config://")
	text, ok := componentConfigs[component]
	if !ok {
		text = fmt.Sprintf("Config for %s not found", component)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     text,
		},
	}, nil
}

// LedgerResource returns the MCP resource definition for ledger status.
func (h *Handler) LedgerResource() mcp.Resource {
	return mcp.NewResource(
		"loom://ledger/status",
		"Strand Ledger Status",
		mcp.WithResourceDescription("Current strand counts and id counter"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleLedger returns the ledger summary as JSON.
func (h *Handler) HandleLedger(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	active, completed, counter, err := h.repo.Stats()
	if err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}

	data, err := json.MarshalIndent(map[string]any{
		"active":    active,
		"completed": completed,
		"counter":   counter,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling status: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
