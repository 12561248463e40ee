package app

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/harness/internal/config"
)

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := NewLogger(config.LogConfig{Level: "debug", Format: "json"}, &buf)
	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	WithComponent(logger, "test").Debug("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "test", entry["component"])
}

func TestNewLoggerTextFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := NewLogger(config.LogConfig{Level: "WARN", Format: "text"}, &buf)
	require.NoError(t, err)

	logger.Info("quiet")
	logger.Warn("loud")

	out := buf.String()
	assert.NotContains(t, out, "quiet")
	assert.Contains(t, out, "loud")
}

func TestNewLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "harness.log")
	logger, closer, err := NewLogger(config.LogConfig{Level: "info", Format: "text", File: path}, nil)
	require.NoError(t, err)

	logger.Info("to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "to file"))
}

func TestNewLoggerBadLevel(t *testing.T) {
	_, _, err := NewLogger(config.LogConfig{Level: "loud"}, nil)
	require.Error(t, err)
}

func TestNewUsesLogOutput(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.Log.Format = "json"

	a, err := New(cfg, Options{LogOutput: &buf})
	require.NoError(t, err)
	defer a.Close()

	a.Execute("nosuchcommand")

	var entry map[string]any
	line := strings.TrimSpace(buf.String())
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, a.ID(), entry["instance"])
	assert.Equal(t, "command", entry["component"])
	assert.Equal(t, `command "nosuchcommand" does not exist`, entry["msg"])
}
