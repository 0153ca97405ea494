package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI against a fresh database and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("EDUWISE_LLM_PROVIDER", "mock")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append([]string{"--db", filepath.Join(dir, "eduwise.db"), "--user", "cli_tester"}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "eduwise")
}

func TestEmptyDatabase(t *testing.T) {
	out, err := execute(t, "plan", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No plans yet")

	out, err = execute(t, "test", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No tests yet")

	out, err = execute(t, "analyze")
	require.NoError(t, err)
	assert.Contains(t, out, "No topic has 5 answered questions")

	out, err = execute(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "Plans (0)")
	assert.Contains(t, out, "Results (0)")

	out, err = execute(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "No test results yet")
}

func TestArgumentErrors(t *testing.T) {
	_, err := execute(t, "plan", "delete", "abc")
	assert.ErrorContains(t, err, "invalid ID")

	_, err = execute(t, "test", "generate")
	assert.ErrorContains(t, err, "exactly one of --topic or --day")

	_, err = execute(t, "plan", "show")
	assert.ErrorContains(t, err, "no plan to show")
}

func TestPlanCreateReportsProviderFailure(t *testing.T) {
	// The mock provider has no queued responses.
	_, err := execute(t, "plan", "create", "--topic", "Go")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unavailable")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Türkç...", truncate("Türkçe öğrenme", 8))
}
