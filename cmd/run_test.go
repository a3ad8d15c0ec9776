package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyllc/gotester/internal/controller"
)

const passingSuiteYAML = `
name: passing
groups:
  - name: arithmetic
    checks:
      - kind: point
        actual: 4
        expected: 4
      - kind: float
        actual: 2.05
        expected: 2.0
        range: 0.1
`

const failingSuiteYAML = `
name: failing
groups:
  - name: doomed
    checks:
      - kind: point
        actual: 1
        expected: 2
`

const failFastSuiteYAML = `
name: strict
settings:
  throw_on_fail: true
groups:
  - name: guarded
    checks:
      - kind: point
        actual: 1
        expected: 1
      - kind: point
        actual: 1
        expected: 2
`

// withTestEnvironment points the reports directory and log file at temp
// locations and captures UI output, restoring the globals afterwards.
func withTestEnvironment(t *testing.T) (reportsDir string, out *bytes.Buffer) {
	t.Helper()

	reportsDir = filepath.Join(t.TempDir(), "reports")
	viper.Set(outputFlagName, reportsDir)
	viper.Set(logFilenameKey, filepath.Join(t.TempDir(), "test.log"))
	t.Cleanup(func() {
		viper.Set(outputFlagName, defaultReportsDir)
		viper.Set(logFilenameKey, defaultLogFilename)
	})

	out = &bytes.Buffer{}
	uiCmd := &cobra.Command{}
	uiCmd.SetOut(out)

	originalUI := ui
	ui = controller.NewSimpleUI(uiCmd, false)
	t.Cleanup(func() { ui = originalUI })

	return reportsDir, out
}

func writeSuiteFile(t *testing.T, yaml string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "suite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o640))

	return path
}

func TestRunCmd_ExecutesSuiteAndSavesReport(t *testing.T) {
	reportsDir, out := withTestEnvironment(t)
	suitePath := writeSuiteFile(t, passingSuiteYAML)

	cmd := baseRootCmd()
	cmd.AddCommand(newRunCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"run", suitePath})

	require.NoError(t, cmd.Execute())

	output := out.String()
	assert.Contains(t, output, "arithmetic | 2/2 passed | Status: SUCCESS")
	assert.Contains(t, output, "Total Groups 2")

	saved, err := os.ReadFile(filepath.Join(reportsDir, "latest.json"))
	require.NoError(t, err)
	assert.Contains(t, string(saved), `"testResults"`)
	assert.Contains(t, string(saved), `"arithmetic"`)

	_, err = os.Stat(filepath.Join(reportsDir, "history.jsonl"))
	require.NoError(t, err)
}

func TestRunCmd_FailingSuiteReturnsError(t *testing.T) {
	_, out := withTestEnvironment(t)
	suitePath := writeSuiteFile(t, failingSuiteYAML)

	cmd := baseRootCmd()
	cmd.AddCommand(newRunCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"run", suitePath})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 checks failed")
	assert.Contains(t, out.String(), "Status: FAILURE")
}

func TestRunCmd_FailFastSuiteReturnsError(t *testing.T) {
	// The escalated check is never recorded, so the counts alone look clean;
	// the FAILURE EARLY status still has to fail the run.
	_, out := withTestEnvironment(t)
	suitePath := writeSuiteFile(t, failFastSuiteYAML)

	cmd := baseRootCmd()
	cmd.AddCommand(newRunCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"run", suitePath})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "groups failed")
	assert.Contains(t, out.String(), "Status: FAILURE EARLY")
}

func TestRunCmd_MissingSuiteFile(t *testing.T) {
	withTestEnvironment(t)

	cmd := baseRootCmd()
	cmd.AddCommand(newRunCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"run", filepath.Join(t.TempDir(), "missing.yaml")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read suite file")
}

func TestRunCmd_RequiresAtLeastOneSuite(t *testing.T) {
	cmd := baseRootCmd()
	cmd.AddCommand(newRunCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"run"})

	require.Error(t, cmd.Execute())
}
