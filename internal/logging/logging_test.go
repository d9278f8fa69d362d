package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleMessageOnly(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{Console: &buf})
	require.NoError(t, err)

	l.Info("installing plugin", "name", "x")
	l.Debug("hidden")
	assert.Equal(t, "installing plugin\n", buf.String())
}

func TestConsoleDebug(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{Console: &buf, Debug: true})
	require.NoError(t, err)

	l.Debug("action started")
	assert.Equal(t, "action started\n", buf.String())
}

func TestFileGetsDebug(t *testing.T) {
	t.Setenv("ARCLI_LOG_MAX_SIZE", "5")
	path := filepath.Join(t.TempDir(), "logs", "arcli.log")

	var buf bytes.Buffer
	l, err := New(Options{Console: &buf, File: path})
	require.NoError(t, err)

	l.Debug("action started", "action", "fetch")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "action=fetch")
	assert.Empty(t, buf.String())
}

func TestDiscard(t *testing.T) {
	Discard().Error("nothing")
	var nilLogger *Logger
	assert.NoError(t, nilLogger.Close())
}
