package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "INFO", LevelInfo.String())
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
}

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: LevelInfo, Format: "json", Output: &buf})

	logger.Info("agent.run.start", "agent", "analyst")
	logger.Debug("should be filtered")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 1)

	var entry map[string]any
	assert.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "agent.run.start", entry["msg"])
	assert.Equal(t, "analyst", entry["agent"])
}

func TestNewTextLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: LevelError, Format: "text", Output: &buf})

	logger.Warn("warned")
	logger.Error("errored", "code", 500)

	out := buf.String()
	assert.NotContains(t, out, "warned")
	assert.Contains(t, out, "errored")
	assert.Contains(t, out, "code=500")
}

func TestOrNoOp(t *testing.T) {
	assert.IsType(t, NoOpLogger{}, OrNoOp(nil))

	logger := New(nil)
	assert.Same(t, logger, OrNoOp(logger))

	// NoOpLogger discards everything without panicking.
	noop := NoOpLogger{}
	noop.Debug("a")
	noop.Info("b", "k", "v")
	noop.Warn("c")
	noop.Error("d")
}
