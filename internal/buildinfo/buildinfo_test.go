package buildinfo

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrintBuildData_Defaults(t *testing.T) {
	var buf bytes.Buffer
	PrintBuildData(&buf)

	out := buf.String()
	require.Contains(t, out, "Build version: N/A")
	require.Contains(t, out, "Build date: N/A")
	require.Contains(t, out, "Build commit: N/A")
}

func TestPrintBuildData_LinkedValues(t *testing.T) {
	origVersion, origDate, origCommit := buildVersion, buildDate, buildCommit
	t.Cleanup(func() {
		buildVersion, buildDate, buildCommit = origVersion, origDate, origCommit
	})

	buildVersion = "v0.3.1"
	buildDate = "2026-08-01"
	buildCommit = "deadbee"

	var buf bytes.Buffer
	PrintBuildData(&buf)

	require.Equal(t,
		"Build version: v0.3.1\nBuild date: 2026-08-01\nBuild commit: deadbee\n",
		buf.String())
	require.Equal(t, "v0.3.1", Version())
}
