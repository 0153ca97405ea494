package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_FileAndConsole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "eduwise.log")
	var console bytes.Buffer

	logger, closer, err := Setup(Options{File: path, Level: slog.LevelInfo, Console: true, Stderr: &console})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Warn("skipping unreadable test result", "record_id", 7)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "eduwise", rec["app"])
	assert.Equal(t, float64(7), rec["record_id"])

	assert.Contains(t, console.String(), "record_id=7")
	assert.NotContains(t, console.String(), "hidden")
}

func TestSetup_Nothing(t *testing.T) {
	logger, closer, err := Setup(Options{})
	require.NoError(t, err)
	logger.Error("dropped")
	assert.NoError(t, closer.Close())
}
