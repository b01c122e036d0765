package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewSlog_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewSlog(SlogConfig{Level: "info", Format: "json", Output: &buf})

	Component(log, "storage").Info("cafe saved", "id", 7)
	log.Debug("hidden")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "cafe saved", entry["msg"])
	assert.Equal(t, "storage", entry["component"])
	assert.EqualValues(t, 7, entry["id"])
	assert.NotEmpty(t, entry["time"])
}

func TestNewSlog_Text(t *testing.T) {
	var buf bytes.Buffer
	log := NewSlog(SlogConfig{Level: "debug", Format: "text", Output: &buf})

	log.Debug("visible")
	assert.Contains(t, buf.String(), "msg=visible")
}
