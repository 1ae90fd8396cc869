// Package strandtools provides MCP tool handlers for the reasoning-strand
// ledger.
//
// Each tool handler follows the same pattern as internal/tools:
// - A struct with dependencies (strand.Repo) injected via constructor
// - Definition() returns the mcp.Tool schema
// - Handle() processes the request and returns a result
//
// Handlers convert every failure into a tool-result error so the transport
// loop keeps running after any single request's failure.
package strandtools

import (
	"fmt"
	"strings"
	"time"

	"github.com/loomworks/loom/internal/strand"
	"github.com/mark3labs/mcp-go/mcp"
)

// intArg extracts an integer argument from a tool request, returning
// defaultVal if the key is missing or not a number (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// formatStrand renders one strand as a readable block for tool responses.
func formatStrand(s *strand.Strand) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s — %s [%s]\n", s.ID, s.Topic, s.Status())
	if s.BranchedFrom != "" {
		fmt.Fprintf(&b, "Branched from: %s\n", s.BranchedFrom)
	}
	fmt.Fprintf(&b, "Created: %s | Updated: %s\n", stamp(s.Created), stamp(s.LastUpdated))
	b.WriteString("\nThoughts:\n")
	for i, thought := range s.Thoughts {
		fmt.Fprintf(&b, "%d. %s\n", i+1, thought)
	}
	if s.Done() {
		fmt.Fprintf(&b, "\nConclusion (%s): %s\n", stamp(*s.Completed), s.Conclusion)
	}
	return b.String()
}

// summaryLine renders one strand as a single list row.
func summaryLine(s *strand.Strand) string {
	suffix := ""
	if s.BranchedFrom != "" {
		suffix = fmt.Sprintf(" (branched from %s)", s.BranchedFrom)
	}
	return fmt.Sprintf("%s [%s] %s — %d thoughts%s", s.ID, s.Status(), s.Topic, len(s.Thoughts), suffix)
}

func stamp(t time.Time) string {
	return t.Format(time.RFC3339)
}
