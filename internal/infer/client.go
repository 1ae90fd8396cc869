// Package infer forwards prompts to an OpenAI-compatible chat endpoint.
//
// This is a pass-through network client only: no retries, no streaming,
// no prompt shaping. If the environment does not configure an endpoint,
// the subsystem stays disabled and the forward tool is never registered.
package infer

import (
	"context"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

// Config holds the inference endpoint settings, read from the environment.
type Config struct {
	BaseURL string
	Model   string
	APIKey  string
}

// FromEnv reads the inference configuration from LOOM_INFER_BASE_URL,
// LOOM_INFER_MODEL, and OPENAI_API_KEY.
func FromEnv() Config {
	return Config{
		BaseURL: os.Getenv("LOOM_INFER_BASE_URL"),
		Model:   os.Getenv("LOOM_INFER_MODEL"),
		APIKey:  os.Getenv("OPENAI_API_KEY"),
	}
}

// Enabled reports whether the configuration names a usable endpoint:
// a model plus either an API key (hosted) or a base URL (local server).
func (c Config) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || c.BaseURL != "")
}

// Client is a thin wrapper over the OpenAI-compatible API.
type Client struct {
	api   *openai.Client
	model string
}

// New creates a Client from the given configuration.
func New(cfg Config) *Client {
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}
	return &Client{
		api:   openai.NewClientWithConfig(apiCfg),
		model: cfg.Model,
	}
}

// Forward sends one prompt as a single user message and returns the model's
// reply text verbatim.
func (c *Client) Forward(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("forwarding prompt: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("forwarding prompt: empty response from %s", c.model)
	}
	return resp.Choices[0].Message.Content, nil
}
