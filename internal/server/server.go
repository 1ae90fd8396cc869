// Package server wires all MCP components and creates the server instance.
//
// This is the composition root (DIP): it creates concrete implementations
// and injects them into the tools/prompts/resources that depend on
// abstractions. No business logic lives here — only wiring.
package server

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/loomworks/loom/internal/infer"
	"github.com/loomworks/loom/internal/metrics"
	"github.com/loomworks/loom/internal/prefs"
	"github.com/loomworks/loom/internal/prompts"
	"github.com/loomworks/loom/internal/resources"
	"github.com/loomworks/loom/internal/scan"
	"github.com/loomworks/loom/internal/strand"
	"github.com/loomworks/loom/internal/strandtools"
	"github.com/loomworks/loom/internal/tools"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"
)

// Version is set at build time via ldflags.
var Version = "dev"

// DataDir resolves the server's data directory: LOOM_DATA_DIR if set,
// otherwise ~/.loom.
func DataDir() string {
	if dir := os.Getenv("LOOM_DATA_DIR"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".loom")
}

// New creates and configures the MCP server with all tools, prompts, and
// resources registered. This is the single place where all dependencies
// are resolved.
//
// The returned cleanup function closes the metrics recorder and must be
// called on shutdown (typically via defer). It is always non-nil and safe
// to call even if metrics init failed.
func New() (*server.MCPServer, func(), error) {
	dataDir := DataDir()

	// --- Create shared dependencies ---

	repo := strand.NewRepo(strand.NewFileStore(dataDir))
	prefStore := prefs.NewFileStore(dataDir)

	ruleset, err := scan.LoadRuleset()
	if err != nil {
		return nil, noop, err
	}
	scanner := scan.NewScanner(ruleset)
	vlog := scan.NewViolationLog(dataDir)

	// Metrics are best-effort: if the recorder can't open its database the
	// server still runs, it just records nothing (nil recorder is a no-op).
	cleanup := noop
	recorder, metricsErr := metrics.New(dataDir)
	if metricsErr != nil {
		log.Warn().Err(metricsErr).Msg("metrics disabled")
		recorder = nil
	} else {
		cleanup = func() {
			if err := recorder.Close(); err != nil {
				log.Warn().Err(err).Msg("metrics recorder close")
			}
		}
	}

	inferCfg := infer.FromEnv()

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"loom",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithToolHandlerMiddleware(recordCalls(recorder)),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register strand tools ---

	createTool := strandtools.NewCreateTool(repo)
	s.AddTool(createTool.Definition(), createTool.Handle)

	appendTool := strandtools.NewAppendTool(repo)
	s.AddTool(appendTool.Definition(), appendTool.Handle)

	getTool := strandtools.NewGetTool(repo)
	s.AddTool(getTool.Definition(), getTool.Handle)

	listTool := strandtools.NewListTool(repo)
	s.AddTool(listTool.Definition(), listTool.Handle)

	searchTool := strandtools.NewSearchTool(repo)
	s.AddTool(searchTool.Definition(), searchTool.Handle)

	completeTool := strandtools.NewCompleteTool(repo)
	s.AddTool(completeTool.Definition(), completeTool.Handle)

	branchTool := strandtools.NewBranchTool(repo)
	s.AddTool(branchTool.Definition(), branchTool.Handle)

	// --- Register architecture tools ---

	statusTool := tools.NewStatusTool(repo, Version, recorder != nil, inferCfg.Enabled())
	s.AddTool(statusTool.Definition(), statusTool.Handle)

	patternTool := tools.NewPatternTool(prefStore)
	s.AddTool(patternTool.Definition(), patternTool.Handle)

	getPrefs := tools.NewGetPreferencesTool(prefStore)
	s.AddTool(getPrefs.Definition(), getPrefs.Handle)

	updatePrefs := tools.NewUpdatePreferencesTool(prefStore)
	s.AddTool(updatePrefs.Definition(), updatePrefs.Handle)

	scanTool := tools.NewScanTool(scanner, vlog)
	s.AddTool(scanTool.Definition(), scanTool.Handle)

	violationsTool := tools.NewViolationsTool(vlog)
	s.AddTool(violationsTool.Definition(), violationsTool.Handle)

	budgetTool := tools.NewBudgetTool()
	s.AddTool(budgetTool.Definition(), budgetTool.Handle)

	usageTool := tools.NewUsageTool(recorder)
	s.AddTool(usageTool.Definition(), usageTool.Handle)

	// Inference pass-through is opt-in: without endpoint configuration the
	// tool is not registered at all.
	if inferCfg.Enabled() {
		forwardTool := tools.NewForwardTool(infer.New(inferCfg))
		s.AddTool(forwardTool.Definition(), forwardTool.Handle)
	} else {
		log.Info().Msg("inference pass-through disabled: no endpoint configured")
	}

	// --- Register prompts ---

	statusPrompt := prompts.NewStatusPrompt()
	s.AddPrompt(statusPrompt.Definition(), statusPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(repo)
	s.AddResource(resourceHandler.LedgerResource(), resourceHandler.HandleLedger)
	s.AddResourceTemplate(resourceHandler.ConfigTemplate(), resourceHandler.HandleConfig)

	return s, cleanup, nil
}

// noop is a no-op cleanup function used as the default when metrics are
// disabled or haven't been initialized.
func noop() {}

// recordCalls wraps every tool handler with the usage recorder. A nil
// recorder makes the middleware a pass-through.
func recordCalls(recorder *metrics.Recorder) server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			start := time.Now()
			res, err := next(ctx, req)

			ok := err == nil && (res == nil || !res.IsError)
			if recErr := recorder.Record(req.Params.Name, ok, time.Since(start)); recErr != nil {
				log.Warn().Err(recErr).Str("tool", req.Params.Name).Msg("recording tool call")
			}
			return res, err
		}
	}
}

// serverInstructions returns the system instructions that tell the AI how
// to use Loom effectively.
func serverInstructions() string {
	return `You have access to Loom, a persistent reasoning-strand MCP server.

## What is a strand?
A strand is a named, persistent chain of thought. Unlike scratch reasoning,
strands survive between conversations: you can resume them, search them,
branch alternatives from them, and conclude them.

## Strand workflow
1. strand_create(topic, initial_thought) — start reasoning about a problem
2. strand_append(strand_id, thought) — add each further step as you think
3. strand_complete(strand_id, conclusion) — freeze the strand with its outcome
4. strand_branch(source_strand_id, branch_topic, branch_thought) — fork an
   alternative line of reasoning; the branch inherits the source's full
   history and records its lineage. You can branch from completed strands.

## Retrieval
- strand_list(status, limit) — enumerate strands (active, completed, or all)
- strand_get(strand_id) — read one strand in full
- strand_search(query, limit) — substring search over topics, thoughts, and
  conclusions; topic matches rank first, then newest strands

## Rules
- Every strand needs an initial thought — never create an empty one
- Completed strands are frozen: append fails, branch instead
- Record REAL reasoning steps, not placeholders
- At the start of a session, strand_list or strand_search to recover context

## Other tools
- arch_status — server version, strand counts, subsystem health
- get_preferences / update_preferences — stored user preferences; unknown
  fields go to an explicit extension map
- add_pattern — register an architectural pattern for this workspace
- scan_text — check text for marketing language (violations are logged;
  review with list_violations)
- context_estimate — rough token count (len/4) against a budget
- usage_stats — per-tool call counts for this server
- forward_prompt — pass a prompt to the configured inference endpoint
  (only present when an endpoint is configured)`
}
