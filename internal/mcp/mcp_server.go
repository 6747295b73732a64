// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/migcheck/migcheck/internal/contract"
)

// NewMCPServer initializes and configures the migcheck MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, store contract.HistoryStore) *server.MCPServer {
	s := server.NewMCPServer(
		"Migration Readiness Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		store:   store,
	}

	// --- 1. Tool: run_migration_check ---
	s.AddTool(mcp.NewTool("run_migration_check",
		mcp.WithDescription("Run portability diagnostics against a project and return the full report as JSON."),
		mcp.WithString("project_path", mcp.Description("Path to the project root (defaults to the configured root).")),
		mcp.WithString("checkers", mcp.Description("Comma-separated checker names (line-endings, permissions, path, dependency, connectivity). Defaults to all.")),
		mcp.WithBoolean("full", mcp.Description("Enable full mode: venv install and live cloud probes.")),
	), h.handleRunMigrationCheck)

	// --- 2. Tool: get_run_history ---
	s.AddTool(mcp.NewTool("get_run_history",
		mcp.WithDescription("Return the most recent recorded diagnostic runs, newest first."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of runs to return. Defaults to 20.")),
	), h.handleGetRunHistory)

	// --- 3. Tool: get_history_status ---
	s.AddTool(mcp.NewTool("get_history_status",
		mcp.WithDescription("Return status information about the run-history store."),
	), h.handleGetHistoryStatus)

	return s
}

// StartMCPServer starts the migcheck MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, store contract.HistoryStore) error {
	s := NewMCPServer(baseCfg, store)
	return server.ServeStdio(s)
}
