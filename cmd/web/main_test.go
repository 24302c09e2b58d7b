package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMainLogsFailureToFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "web.log")
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("LOG_FILE", logPath)
	t.Setenv("SCENE_FILE", filepath.Join(dir, "missing.yaml"))

	assert.Equal(t, 1, runMain())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "server failed")
	assert.Contains(t, string(data), "missing.yaml")
}

func TestRunMainRejectsBadLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")
	t.Setenv("LOG_FILE", "")
	assert.Equal(t, 1, runMain())
}
