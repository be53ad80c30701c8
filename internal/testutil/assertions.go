package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertDocumentSynced checks the log output within a HarnessResult to
// confirm that a document finished its first synchronization pass.
func AssertDocumentSynced(t *testing.T, result *HarnessResult, name string) {
	t.Helper()

	want := fmt.Sprintf("report.document=%s ", name)
	for _, line := range strings.Split(result.LogOutput, "\n") {
		if strings.Contains(line, "Document synchronized.") && strings.Contains(line, want) {
			return
		}
	}
	require.Fail(t, "document not synchronized", "expected document '%s' to be synchronized, but it was not found in logs.\nLogs:\n%s", name, result.LogOutput)
}

// AssertWarned checks that the run logged a synchronization warning or a
// document problem containing substr.
func AssertWarned(t *testing.T, result *HarnessResult, substr string) {
	t.Helper()

	for _, line := range strings.Split(result.LogOutput, "\n") {
		if !strings.Contains(line, "level=WARN") {
			continue
		}
		if strings.Contains(line, substr) {
			return
		}
	}
	require.Fail(t, "expected warning not logged", "substring %q\nLogs:\n%s", substr, result.LogOutput)
}
