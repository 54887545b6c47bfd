package monitoring

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStructuredLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLogger(LoggerConfig{
		Level:     slog.LevelInfo,
		Format:    FormatJSON,
		Output:    &buf,
		Component: "fmt",
		Fields:    map[string]any{"input": "stdin"},
	})

	logger.Debug("hidden")
	logger.Info("formatted", "bytes", 12)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.Equal(t, "formatted", record["msg"])
	assert.Equal(t, "INFO", record["level"])
	assert.Equal(t, "tagjson", record["service"])
	assert.Equal(t, "fmt", record["component"])
	assert.Equal(t, "stdin", record["input"])
	assert.Equal(t, float64(12), record["bytes"])
}

func TestNewStructuredLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLogger(LoggerConfig{Level: slog.LevelWarn, Format: FormatText, Output: &buf})

	logger.Info("hidden")
	logger.Warn("careful", "serializer", "Date")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=careful")
	assert.Contains(t, out, "serializer=Date")
}

func TestConsoleHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLogger(LoggerConfig{Level: slog.LevelDebug, Format: FormatConsole, Output: &buf})

	logger.WithGroup("tag").Debug("tagged string left as text", "serializer", "Nope")

	out := buf.String()
	assert.Contains(t, out, "DEBUG")
	assert.Contains(t, out, "tagged string left as text")
	assert.Contains(t, out, " service=tagjson")
	assert.NotContains(t, out, "tag.service")
	assert.Contains(t, out, "tag.serializer=Nope")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
		wantErr  bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range []LogFormat{FormatJSON, FormatText, FormatConsole} {
		parsed, err := ParseFormat(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, parsed)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestNewLoggerFromEnvironment(t *testing.T) {
	t.Setenv("TAGJSON_LOG_LEVEL", "error")
	t.Setenv("TAGJSON_LOG_FORMAT", "json")

	var buf bytes.Buffer
	logger := NewLoggerFromEnvironment("cli", &buf)
	logger.Warn("hidden")
	logger.Error("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"component":"cli"`)
}
