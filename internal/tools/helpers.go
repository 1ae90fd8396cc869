// Package tools implements the MCP tool handlers that sit outside the
// strand ledger: server status, architectural patterns, user preferences,
// the marketing-language scanner, context budgeting, usage statistics, and
// the inference pass-through.
//
// Each tool receives its dependencies via its struct (DIP) and exposes
// Definition() plus a Handle() compatible with mcp-go's CallToolRequest
// signature.
package tools

import (
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
