package strandtools

import (
	"context"
	"strings"
	"testing"

	"github.com/loomworks/loom/internal/strand"
	"github.com/mark3labs/mcp-go/mcp"
)

// ─── Test helpers ────────────────────────────────────────────────────────────

// newTestRepo creates a strand.Repo in a temp directory for testing.
func newTestRepo(t *testing.T) *strand.Repo {
	t.Helper()
	return strand.NewRepo(strand.NewFileStore(t.TempDir()))
}

// makeReq builds a mcp.CallToolRequest with the given arguments.
func makeReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the text content from a tool result.
func resultText(r *mcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

// callOK invokes a handler and fails the test if the result is an error.
func callOK(t *testing.T, name string, handle func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]interface{}) string {
	t.Helper()
	res, err := handle(context.Background(), makeReq(args))
	if err != nil {
		t.Fatalf("%s returned transport error: %v", name, err)
	}
	if res.IsError {
		t.Fatalf("%s returned tool error: %s", name, resultText(res))
	}
	return resultText(res)
}

// ─── CreateTool ─────────────────────────────────────────────────────────────

func TestCreateTool_Definition(t *testing.T) {
	def := NewCreateTool(newTestRepo(t)).Definition()

	if def.Name != "strand_create" {
		t.Errorf("tool name = %q, want %q", def.Name, "strand_create")
	}
	props := def.InputSchema.Properties
	if _, ok := props["topic"]; !ok {
		t.Error("missing 'topic' parameter")
	}
	if _, ok := props["initial_thought"]; !ok {
		t.Error("missing 'initial_thought' parameter")
	}
	if len(def.InputSchema.Required) != 2 {
		t.Errorf("required = %v, want both arguments required", def.InputSchema.Required)
	}
}

func TestCreateTool_Handle(t *testing.T) {
	tool := NewCreateTool(newTestRepo(t))

	text := callOK(t, "strand_create", tool.Handle, map[string]interface{}{
		"topic":           "Bug triage",
		"initial_thought": "Check logs",
	})
	if !strings.Contains(text, "strand_1") {
		t.Errorf("response %q should name the new strand id", text)
	}
	if !strings.Contains(text, "Bug triage") {
		t.Errorf("response %q should echo the topic", text)
	}
}

func TestCreateTool_MissingArgs(t *testing.T) {
	tool := NewCreateTool(newTestRepo(t))

	cases := []map[string]interface{}{
		{},
		{"topic": "only topic"},
		{"initial_thought": "only thought"},
		{"topic": "", "initial_thought": ""},
	}
	for _, args := range cases {
		res, err := tool.Handle(context.Background(), makeReq(args))
		if err != nil {
			t.Fatalf("Handle error: %v", err)
		}
		if !res.IsError {
			t.Errorf("args %v: expected parameter error", args)
		}
	}
}

// ─── AppendTool ─────────────────────────────────────────────────────────────

func TestAppendTool_Handle(t *testing.T) {
	repo := newTestRepo(t)
	s, _ := repo.Create("topic", "first")

	tool := NewAppendTool(repo)
	text := callOK(t, "strand_append", tool.Handle, map[string]interface{}{
		"strand_id": s.ID,
		"thought":   "second",
	})
	if !strings.Contains(text, "2 thoughts") {
		t.Errorf("response %q should report the new thought count", text)
	}
}

func TestAppendTool_NotFoundNamesID(t *testing.T) {
	tool := NewAppendTool(newTestRepo(t))

	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"strand_id": "strand_77",
		"thought":   "anything",
	}))
	if err != nil {
		t.Fatalf("Handle error: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected tool error for unknown strand")
	}
	if !strings.Contains(resultText(res), "strand_77") {
		t.Errorf("error %q should carry the offending id", resultText(res))
	}
}

// ─── CompleteTool ───────────────────────────────────────────────────────────

func TestCompleteTool_Handle(t *testing.T) {
	repo := newTestRepo(t)
	s, _ := repo.Create("topic", "thought")

	tool := NewCompleteTool(repo)
	text := callOK(t, "strand_complete", tool.Handle, map[string]interface{}{
		"strand_id":  s.ID,
		"conclusion": "Patch applied",
	})
	if !strings.Contains(text, "Patch applied") {
		t.Errorf("response %q should echo the conclusion", text)
	}

	// Second completion: the strand is gone from active.
	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"strand_id":  s.ID,
		"conclusion": "again",
	}))
	if err != nil {
		t.Fatalf("Handle error: %v", err)
	}
	if !res.IsError {
		t.Error("second complete should fail")
	}
}

// ─── BranchTool ─────────────────────────────────────────────────────────────

func TestBranchTool_Handle(t *testing.T) {
	repo := newTestRepo(t)
	src, _ := repo.Create("Bug triage", "Check logs")
	if _, err := repo.Append(src.ID, "Found root cause"); err != nil {
		t.Fatalf("Append error: %v", err)
	}
	if _, err := repo.Complete(src.ID, "Patch applied"); err != nil {
		t.Fatalf("Complete error: %v", err)
	}

	tool := NewBranchTool(repo)
	text := callOK(t, "strand_branch", tool.Handle, map[string]interface{}{
		"source_strand_id": src.ID,
		"branch_topic":     "Regression check",
		"branch_thought":   "Re-verify after patch",
	})
	if !strings.Contains(text, "strand_2") {
		t.Errorf("response %q should name the branch id", text)
	}
	if !strings.Contains(text, "3 thoughts") {
		t.Errorf("response %q should report inherited + new thought count", text)
	}
	if !strings.Contains(text, src.ID) {
		t.Errorf("response %q should name the source id", text)
	}
}

// ─── GetTool / ListTool ─────────────────────────────────────────────────────

func TestGetTool_Handle(t *testing.T) {
	repo := newTestRepo(t)
	s, _ := repo.Create("topic", "the only thought")

	tool := NewGetTool(repo)
	text := callOK(t, "strand_get", tool.Handle, map[string]interface{}{"strand_id": s.ID})
	if !strings.Contains(text, "the only thought") {
		t.Errorf("response %q should include the thought text", text)
	}
	if !strings.Contains(text, "[active]") {
		t.Errorf("response %q should show the status", text)
	}
}

func TestListTool_Handle(t *testing.T) {
	repo := newTestRepo(t)
	a, _ := repo.Create("alpha", "t")
	b, _ := repo.Create("beta", "t")
	if _, err := repo.Complete(b.ID, "done"); err != nil {
		t.Fatalf("Complete error: %v", err)
	}

	tool := NewListTool(repo)

	text := callOK(t, "strand_list", tool.Handle, map[string]interface{}{})
	if !strings.Contains(text, a.ID) || !strings.Contains(text, b.ID) {
		t.Errorf("default list %q should include both strands", text)
	}

	text = callOK(t, "strand_list", tool.Handle, map[string]interface{}{"status": "active"})
	if !strings.Contains(text, a.ID) || strings.Contains(text, b.ID) {
		t.Errorf("active-only list %q should include %s only", text, a.ID)
	}
}

func TestListTool_Empty(t *testing.T) {
	tool := NewListTool(newTestRepo(t))
	text := callOK(t, "strand_list", tool.Handle, map[string]interface{}{})
	if !strings.Contains(text, "No strands") {
		t.Errorf("response %q should say nothing was found", text)
	}
}

// ─── SearchTool ─────────────────────────────────────────────────────────────

func TestSearchTool_Handle(t *testing.T) {
	repo := newTestRepo(t)
	if _, err := repo.Create("cache design", "consider LRU"); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	tool := NewSearchTool(repo)
	text := callOK(t, "strand_search", tool.Handle, map[string]interface{}{"query": "cache"})
	if !strings.Contains(text, "matched: topic") {
		t.Errorf("response %q should tag the match kind", text)
	}
}

func TestSearchTool_EmptyQuery(t *testing.T) {
	tool := NewSearchTool(newTestRepo(t))
	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("Handle error: %v", err)
	}
	if !res.IsError {
		t.Error("empty query should be a parameter error")
	}
}

func TestSearchTool_Limit(t *testing.T) {
	repo := newTestRepo(t)
	for i := 0; i < 4; i++ {
		if _, err := repo.Create("repeated theme", "t"); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}

	tool := NewSearchTool(repo)
	text := callOK(t, "strand_search", tool.Handle, map[string]interface{}{
		"query": "theme",
		"limit": float64(2),
	})
	if !strings.Contains(text, "Found 2 matches") {
		t.Errorf("response %q should be capped at the limit", text)
	}
}
