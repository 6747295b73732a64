//go:build basic || database || integration

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedMigcheckPath holds the path to a shared migcheck binary built once for all tests.
	sharedMigcheckPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getMigcheckBinary returns the path to the migcheck binary, building it once if needed.
func getMigcheckBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "migcheck-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		migcheckPath := filepath.Join(tempDir, "migcheck")
		buildCmd := exec.Command("go", "build", "-o", migcheckPath, "./cmd/migcheck")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build migcheck: %v", err))
		}

		sharedMigcheckPath = migcheckPath
	})

	return sharedMigcheckPath
}

// runMigcheckCommand runs the built binary with the given args from dir.
func runMigcheckCommand(t *testing.T, dir string, args ...string) error {
	t.Helper()
	migcheckPath := getMigcheckBinary()
	cmd := exec.Command(migcheckPath, args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
		return err
	}
	return nil
}
