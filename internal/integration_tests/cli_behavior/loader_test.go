package integration_tests

import (
	"testing"

	"github.com/specialistvlad/graphsync/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test for: a project spread over nested directories loads as one
func TestCLI_Loader_MergesNestedDirectories(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"classes/voice.hcl": `
class "Voice" {
  input "Pitch" {
    type = "float"
  }
  output "Audio" {
    type = "audio"
  }
}
`,
		"documents/lead/lead.hcl": `
document "Lead" {
  graph "Default" {
    node "v" {
      class = "Voice"
    }
    node "g" {
      class = "Gain"
    }
    connection {
      from = "v.Audio"
      to   = "g.In"
    }
  }
}
`,
		"documents/pad.hcl": `
document "Pad" {}
`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files)

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.True(t, result.App.Registry().HasClass("Voice"))
	testutil.AssertDocumentSynced(t, result, "Lead")
	testutil.AssertDocumentSynced(t, result, "Pad")

	docs := testutil.ReadOutput(t, result)
	require.Contains(t, docs, "Lead")
	g, ok := docs["Lead"].BuildGraph()
	require.True(t, ok)
	assert.Len(t, g.Nodes, 2)
	assert.Len(t, g.Connections, 1)
}

// Test for: a document name declared twice is rejected at startup
func TestCLI_Loader_RejectsDuplicateDocument(t *testing.T) {
	files := map[string]string{
		"a.hcl": `document "Lead" {}`,
		"b.hcl": `document "Lead" {}`,
	}

	result := testutil.RunIntegrationTest(t, files)

	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "application startup panicked")
	assert.Contains(t, result.Err.Error(), "Lead")
}
