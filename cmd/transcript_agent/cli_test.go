package main

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_ListsSubcommands(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "--help")
	output, err := cmd.CombinedOutput()

	require.NoError(t, err)
	out := string(output)
	assert.Contains(t, out, "serve")
	assert.Contains(t, out, "transcribe")
	assert.Contains(t, out, "summarize")
	assert.Contains(t, out, "run")
}

func TestTranscribeCommand_RequiresVideoID(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "transcribe")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "accepts 1 arg(s)")
}

func TestTranscribeCommand_UnreachableServer(t *testing.T) {
	binaryPath := getBinaryPath(t)

	// Port 1 is never a pipeline server
	cmd := exec.Command(binaryPath, "transcribe", "dQw4w9WgXcQ", "--server", "http://localhost:1")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "not reachable")
}

func TestSummarizeCommand_ReadsTranscriptFile(t *testing.T) {
	binaryPath := getBinaryPath(t)

	missing := filepath.Join(t.TempDir(), "nope.txt")
	cmd := exec.Command(binaryPath, "summarize", "dQw4w9WgXcQ", "--transcript", missing, "--server", "http://localhost:1")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "failed to read transcript file")
}

func TestServeCommand_RejectsBadConfig(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cfgPath := filepath.Join(t.TempDir(), "config.json")
	data, err := json.Marshal(map[string]any{"port": 99999})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(cfgPath, data, 0o644))

	cmd := exec.Command(binaryPath, "serve", "--config", cfgPath)
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "'port' must be between 0 and 65535")
}
