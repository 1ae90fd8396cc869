// Package prompts implements MCP prompt handlers.
package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// StatusPrompt handles the loom-status MCP prompt.
// It instructs the AI to read and present the current strand state.
type StatusPrompt struct{}

// NewStatusPrompt creates a StatusPrompt.
func NewStatusPrompt() *StatusPrompt {
	return &StatusPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StatusPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("loom-status",
		mcp.WithPromptDescription(
			"Review your reasoning strands: what's still open, what's concluded, "+
				"and where to pick up.",
		),
	)
}

// Handle processes the loom-status prompt request.
func (p *StatusPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Reasoning Strand Status",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please run `strand_list` to check my reasoning strands.\n\n" +
						"Then:\n" +
						"1. Summarize the active strands and what each is exploring\n" +
						"2. Point out strands that look ready to complete\n" +
						"3. For the most recent active strand, show its full thoughts with `strand_get`\n" +
						"4. Tell me where you'd pick up next",
				),
			},
		},
	}, nil
}
