package integration_tests

import (
	"strings"
	"testing"

	"github.com/specialistvlad/graphsync/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test for: a preset is opened after the document it references
func TestSync_PresetOpensAfterReference(t *testing.T) {
	// --- Arrange ---
	// The preset is declared first on purpose.
	files := map[string]string{
		"a_bright.hcl": `
document "Bright" {
  preset_of        = "Synth"
  inherit_defaults = ["Freq"]

  input "Freq" {
    type = "float"
  }
}
`,
		"b_synth.hcl": `
document "Synth" {
  input "Freq" {
    type     = "float"
    defaults = { Default = 880 }
  }
}
`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files)

	// --- Assert ---
	require.NoError(t, result.Err)
	testutil.AssertDocumentSynced(t, result, "Synth")
	testutil.AssertDocumentSynced(t, result, "Bright")

	synth := strings.Index(result.LogOutput, "report.document=Synth ")
	bright := strings.Index(result.LogOutput, "report.document=Bright ")
	assert.Less(t, synth, bright, "Synth should be synchronized before its preset")
	assert.NotContains(t, result.LogOutput, "missing referenced document")
}

// Test for: a preset whose reference is absent still synchronizes, with a warning
func TestSync_PresetWithMissingReferenceWarns(t *testing.T) {
	files := map[string]string{
		"bright.hcl": `
document "Bright" {
  preset_of = "Gone"

  input "Freq" {
    type = "float"
  }
}
`,
	}

	result := testutil.RunIntegrationTest(t, files)

	require.NoError(t, result.Err)
	testutil.AssertDocumentSynced(t, result, "Bright")
	testutil.AssertWarned(t, result, "missing referenced document")
}
