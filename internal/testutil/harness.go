package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/graphsync/internal/app"
	"github.com/specialistvlad/graphsync/internal/registry"
	"github.com/stretchr/testify/require"
)

// PagesFile is the file name the harness treats as the page settings file.
const PagesFile = "pages.hcl"

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
	// OutputDir holds the synchronized documents written by the run.
	OutputDir string
}

// RunIntegrationTest provides a standardized harness for running integration tests
// using a default background context.
func RunIntegrationTest(t *testing.T, files map[string]string, modules ...registry.Module) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, modules...)
}

// RunIntegrationTestWithContext writes files into a temporary project, runs
// the app over it and captures the outcome. A file named PagesFile becomes
// the page settings file; every other file is a project file. Startup panics
// are recovered and reported as Err.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, modules ...registry.Module) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	projectDir := filepath.Join(tmpDir, "project")
	outputDir := filepath.Join(tmpDir, "out")
	require.NoError(t, os.Mkdir(projectDir, 0o755))

	cfg := &app.Config{
		ProjectPaths: []string{projectDir},
		OutputDir:    outputDir,
		LogLevel:     "debug",
		LogFormat:    "text",
	}

	for name, content := range files {
		filePath := filepath.Join(projectDir, name)
		if name == PagesFile {
			filePath = filepath.Join(tmpDir, name)
			cfg.PagesPath = filePath
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	logBuffer := &app.SafeBuffer{}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(logBuffer, cfg, modules...)
	}()

	result := &HarnessResult{OutputDir: outputDir}
	if panicErr != nil {
		result.Err = fmt.Errorf("application startup panicked | %v", panicErr)
	} else {
		result.App = testApp
		result.Err = testApp.Run(ctx)
	}
	result.LogOutput = logBuffer.String()

	if os.Getenv("GRAPHSYNC_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), result.LogOutput)
	}
	return result
}
