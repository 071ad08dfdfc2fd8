package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_RenamesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, slog.LevelInfo, "text")
	logger.Error("failed", "error", errors.New("boom"))

	assert.Contains(t, buf.String(), "err=boom")
	assert.NotContains(t, buf.String(), "error=")
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter(&buf, slog.LevelDebug, "JSON").Debug("cloned", "nodes", 3)
	assert.Contains(t, buf.String(), `"nodes":3`)
}

func TestNewWithWriter_Level(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter(&buf, slog.LevelWarn, "text").Info("hidden")
	assert.Empty(t, buf.String())
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	level, err = ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
