package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/loomworks/loom/internal/server"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Stdout carries the MCP protocol, so all diagnostics go to stderr.
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		runServe()
	case "version", "-v", "--version":
		fmt.Printf("loom %s\n", server.Version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runServe() {
	s, cleanup, err := server.New()
	if err != nil {
		log.Fatal().Err(err).Msg("initializing server")
	}
	defer cleanup()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		cleanup()
		os.Exit(0)
	}()

	log.Info().Str("version", server.Version).Str("data_dir", server.DataDir()).Msg("loom serving on stdio")
	if err := mcpserver.ServeStdio(s); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

func printUsage() {
	fmt.Print(`loom - persistent reasoning strands over MCP

Usage:
  loom serve      Start the MCP server on stdio
  loom version    Print the version
  loom help       Show this help

Environment:
  LOOM_DATA_DIR         Data directory (default ~/.loom)
  LOOM_INFER_BASE_URL   OpenAI-compatible endpoint for forward_prompt
  LOOM_INFER_MODEL      Model name for forward_prompt
  OPENAI_API_KEY        API key for forward_prompt
`)
}
