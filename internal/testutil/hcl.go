package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/graphsync/internal/document"
	"github.com/specialistvlad/graphsync/internal/hcl"
	"github.com/stretchr/testify/require"
)

// RunDocumentTest runs a single project file through the app and loads the
// documents it wrote back, keyed by name.
func RunDocumentTest(t *testing.T, projectHCL string) (*HarnessResult, map[string]*document.Document) {
	t.Helper()

	result := RunIntegrationTest(t, map[string]string{"main.hcl": projectHCL})
	if result.Err != nil {
		return result, nil
	}
	return result, ReadOutput(t, result)
}

// ReadOutput loads the documents a run wrote to its output directory.
func ReadOutput(t *testing.T, result *HarnessResult) map[string]*document.Document {
	t.Helper()
	require.NotNil(t, result.App, "run did not start")

	ctx := context.Background()
	project, err := hcl.NewLoader().Load(ctx, filepath.Clean(result.OutputDir))
	require.NoError(t, err)

	docs, err := project.Documents(ctx, result.App.Registry(), result.App.Pages().Current())
	require.NoError(t, err)

	out := make(map[string]*document.Document, len(docs))
	for _, d := range docs {
		out[d.Name] = d
	}
	return out
}
