package observability

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/seekearth/internal/config"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(config.LoggingConfig{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)

	logger.Info("atlas built")
	require.NoError(t, logger.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "atlas built", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.NotEmpty(t, entry["run_id"])
}

func TestNewLogger_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(config.LoggingConfig{Level: "debug", Format: "console"}, &buf)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel), "debug should be enabled")

	logger.Debug("map tables loaded")
	assert.Contains(t, buf.String(), "map tables loaded")
	assert.Contains(t, buf.String(), "run_id")
}

func TestNewLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(config.LoggingConfig{Level: "warn", Format: "console"}, &buf)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel), "info should be filtered at warn")

	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewLogger_RunIDDiffersPerLogger(t *testing.T) {
	var a, b bytes.Buffer
	cfg := config.LoggingConfig{Level: "info", Format: "json"}
	la, err := NewLogger(cfg, &a)
	require.NoError(t, err)
	lb, err := NewLogger(cfg, &b)
	require.NoError(t, err)

	la.Info("x")
	lb.Info("x")
	var ea, eb map[string]any
	require.NoError(t, json.Unmarshal(a.Bytes(), &ea))
	require.NoError(t, json.Unmarshal(b.Bytes(), &eb))
	assert.NotEqual(t, ea["run_id"], eb["run_id"])
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	_, err := NewLogger(config.LoggingConfig{Level: "trace", Format: "json"}, io.Discard)
	assert.Error(t, err)
}

func TestNewLogger_InvalidFormat(t *testing.T) {
	_, err := NewLogger(config.LoggingConfig{Level: "info", Format: "xml"}, io.Discard)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), `"xml"`))
}

func TestNewLogger_AllLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		logger, err := NewLogger(config.LoggingConfig{Level: level, Format: "json"}, io.Discard)
		require.NoError(t, err, "level %q should be valid", level)
		assert.NotNil(t, logger)
	}
}
