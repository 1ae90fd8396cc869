package infer_test

import (
	"testing"

	"github.com/loomworks/loom/internal/infer"
)

func TestFromEnv(t *testing.T) {
	t.Setenv("LOOM_INFER_BASE_URL", "http://localhost:11434/v1")
	t.Setenv("LOOM_INFER_MODEL", "llama3")
	t.Setenv("OPENAI_API_KEY", "")

	cfg := infer.FromEnv()
	if cfg.BaseURL != "http://localhost:11434/v1" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Model != "llama3" {
		t.Errorf("Model = %q", cfg.Model)
	}
}

func TestEnabled(t *testing.T) {
	cases := []struct {
		name string
		cfg  infer.Config
		want bool
	}{
		{"empty", infer.Config{}, false},
		{"model only", infer.Config{Model: "gpt-4o"}, false},
		{"key without model", infer.Config{APIKey: "sk-x"}, false},
		{"hosted", infer.Config{Model: "gpt-4o", APIKey: "sk-x"}, true},
		{"local server", infer.Config{Model: "llama3", BaseURL: "http://localhost:11434/v1"}, true},
	}
	for _, tc := range cases {
		if got := tc.cfg.Enabled(); got != tc.want {
			t.Errorf("%s: Enabled() = %v, want %v", tc.name, got, tc.want)
		}
	}
}
