package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/loomworks/loom/internal/scan"
	"github.com/mark3labs/mcp-go/mcp"
)

// ScanTool handles the scan_text MCP tool.
type ScanTool struct {
	scanner *scan.Scanner
	vlog    *scan.ViolationLog
}

// NewScanTool creates a ScanTool.
func NewScanTool(scanner *scan.Scanner, vlog *scan.ViolationLog) *ScanTool {
	return &ScanTool{scanner: scanner, vlog: vlog}
}

// Definition returns the MCP tool definition for scan_text.
func (t *ScanTool) Definition() mcp.Tool {
	return mcp.NewTool("scan_text",
		mcp.WithDescription(
			"Scan text for marketing language against the weighted term list. "+
				"Threshold breaches are recorded in the violation log.",
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The text to scan"),
		),
	)
}

// Handle processes the scan_text tool call.
func (t *ScanTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := req.GetString("text", "")
	if text == "" {
		return mcp.NewToolResultError("'text' is required"), nil
	}

	report := t.scanner.Scan(text)

	var b strings.Builder
	if len(report.Hits) == 0 {
		b.WriteString("No marketing language detected.\n")
	} else {
		fmt.Fprintf(&b, "Score %d (threshold %d):\n", report.Score, report.Threshold)
		for _, h := range report.Hits {
			fmt.Fprintf(&b, "- %q ×%d (weight %d)\n", h.Term, h.Count, h.Weight)
		}
	}

	if report.Violation {
		if err := t.vlog.Record(report, text); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to record violation: %v", err)), nil
		}
		b.WriteString("\nVIOLATION: score at or above threshold — recorded in the violation log.")
	}

	return mcp.NewToolResultText(b.String()), nil
}

// ─── ViolationsTool ─────────────────────────────────────────────────────────

// ViolationsTool handles the list_violations MCP tool.
type ViolationsTool struct {
	vlog *scan.ViolationLog
}

// NewViolationsTool creates a ViolationsTool.
func NewViolationsTool(vlog *scan.ViolationLog) *ViolationsTool {
	return &ViolationsTool{vlog: vlog}
}

// Definition returns the MCP tool definition for list_violations.
func (t *ViolationsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_violations",
		mcp.WithDescription(
			"List recorded marketing-language violations, newest first.",
		),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Max entries (default: %d)", scan.DefaultViolationLimit)),
		),
	)
}

// Handle processes the list_violations tool call.
func (t *ViolationsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := intArg(req, "limit", scan.DefaultViolationLimit)

	entries := t.vlog.List(limit)
	if len(entries) == 0 {
		return mcp.NewToolResultText("No violations recorded."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d violations (newest first):\n\n", len(entries))
	for _, v := range entries {
		fmt.Fprintf(&b, "- %s | score %d | terms: %s\n  %s\n",
			v.At.Format("2006-01-02 15:04"), v.Score, strings.Join(v.Terms, ", "), v.Excerpt)
	}
	return mcp.NewToolResultText(b.String()), nil
}
