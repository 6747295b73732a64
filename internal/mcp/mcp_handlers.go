package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/migcheck/migcheck/core"
	"github.com/migcheck/migcheck/internal/contract"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	store   contract.HistoryStore
}

func (h *toolHandler) handleRunMigrationCheck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	root := request.GetString("project_path", "")
	if root == "" {
		root = cfg.ProjectRoot
	}
	if root == "" {
		root = "."
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid project path: %v", err)), nil
	}
	if info, err := os.Stat(absRoot); err != nil || !info.IsDir() {
		return mcp.NewToolResultError(fmt.Sprintf("project root %q is not accessible", absRoot)), nil
	}
	cfg.ProjectRoot = absRoot
	cfg.ProjectName = filepath.Base(absRoot)

	if names := request.GetString("checkers", ""); names != "" {
		var checkers []string
		for _, name := range strings.Split(names, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if !contract.ValidCheckerName(name) {
				return mcp.NewToolResultError(fmt.Sprintf("unknown checker %q (valid: %s)",
					name, strings.Join(contract.DefaultCheckers, ", "))), nil
			}
			checkers = append(checkers, name)
		}
		cfg.Checkers = checkers
	}
	if len(cfg.Checkers) == 0 {
		cfg.Checkers = append([]string{}, contract.DefaultCheckers...)
	}
	if len(cfg.Excludes) == 0 {
		cfg.Excludes = append([]string{}, contract.DefaultExcludes...)
	}

	cfg.FullMode = request.GetBool("full", cfg.FullMode)

	report, err := core.RunDiagnostics(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("diagnostics failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetRunHistory(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.store == nil {
		return mcp.NewToolResultError("run history is not configured; start the server with a history backend"), nil
	}

	limit := request.GetInt("limit", 20)
	runs, err := h.store.ListRuns(limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing runs failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(runs, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetHistoryStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.store == nil {
		return mcp.NewToolResultError("run history is not configured; start the server with a history backend"), nil
	}

	status, err := h.store.GetStatus()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("history status failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(status, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
