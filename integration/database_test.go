//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// writeCleanProject creates a small portable project that passes the file checks.
func writeCleanProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.py"),
		[]byte("import os\n\nprint(os.path.join('a', 'b'))\n"), 0o644))
	script := filepath.Join(root, "run.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/bash\necho ok\n"), 0o755))
	return root
}

// runHistoryFlow drives the CLI end to end against the configured backend.
func runHistoryFlow(t *testing.T, project string) {
	// Start from a migrated, empty schema
	require.NoError(t, runMigcheckCommand(t, "..", "history", "migrate"))
	require.NoError(t, runMigcheckCommand(t, "..", "history", "clear"))

	// A clean project must pass and get recorded
	require.NoError(t, runMigcheckCommand(t, "..", "check",
		"--checkers", "line-endings,permissions,path", project))

	require.NoError(t, runMigcheckCommand(t, "..", "history", "list"))
	require.NoError(t, runMigcheckCommand(t, "..", "history", "status"))
	require.NoError(t, runMigcheckCommand(t, "..", "history", "clear"))
}

// TestMigcheckWithMySQL tests the migcheck CLI with a MySQL history backend.
func TestMigcheckWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "migcheck",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/migcheck?parseTime=true", host, port.Port())

	// Set environment variables
	t.Setenv("MIGCHECK_HISTORY_BACKEND", "mysql")
	t.Setenv("MIGCHECK_HISTORY_DB_CONNECT", connStr)

	runHistoryFlow(t, writeCleanProject(t))
}

// TestMigcheckWithPostgres tests the migcheck CLI with a PostgreSQL history backend.
func TestMigcheckWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())

	// Set environment variables
	t.Setenv("MIGCHECK_HISTORY_BACKEND", "postgresql")
	t.Setenv("MIGCHECK_HISTORY_DB_CONNECT", connStr)

	runHistoryFlow(t, writeCleanProject(t))
}
