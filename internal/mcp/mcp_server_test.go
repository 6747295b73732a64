package mcp_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/migcheck/migcheck/internal/contract"
	mcp_internal "github.com/migcheck/migcheck/internal/mcp"
)

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	baseCfg := &contract.Config{ProjectRoot: "."}

	// No history store wired; history tools must fail gracefully
	s := mcp_internal.NewMCPServer(baseCfg, nil)

	ctx := context.Background()

	t.Run("run_migration_check unknown checker", func(t *testing.T) {
		tool := s.GetTool("run_migration_check")
		require.NotNil(t, tool, "Tool run_migration_check should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "run_migration_check",
				Arguments: map[string]any{
					"checkers": "path,registry", // Unknown checker
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, `unknown checker "registry"`)
	})

	t.Run("run_migration_check bad project path", func(t *testing.T) {
		tool := s.GetTool("run_migration_check")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "run_migration_check",
				Arguments: map[string]any{
					"project_path": filepath.Join(t.TempDir(), "does-not-exist"),
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "is not accessible")
	})

	t.Run("get_run_history without store", func(t *testing.T) {
		tool := s.GetTool("get_run_history")
		require.NotNil(t, tool, "Tool get_run_history should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{Name: "get_run_history"},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "not configured")
	})

	t.Run("get_history_status without store", func(t *testing.T) {
		tool := s.GetTool("get_history_status")
		require.NotNil(t, tool, "Tool get_history_status should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{Name: "get_history_status"},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
	})
}

func TestMCPServerRunCheck(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "app.py"),
		[]byte("path = 'C:/Users/app'\n"), 0o644))

	baseCfg := &contract.Config{}
	s := mcp_internal.NewMCPServer(baseCfg, nil)

	tool := s.GetTool("run_migration_check")
	require.NotNil(t, tool)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "run_migration_check",
			Arguments: map[string]any{
				"project_path": root,
				"checkers":     "path,line-endings",
			},
		},
	}

	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	require.False(t, res.IsError, "diagnostics over a readable tree must succeed")

	text := res.Content[0].(mcp.TextContent).Text
	assert.Contains(t, text, "DRIVE_LETTER")
	assert.Contains(t, text, "app.py")
}
