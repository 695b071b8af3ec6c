package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(Config{Level: "info", Format: "json"}, &buf)

	logger.Info("saved notes", slog.Int("count", 3))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "saved notes", entry["msg"])
	assert.EqualValues(t, 3, entry["count"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(Config{Level: "warn", Format: "text"}, &buf)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNoteContentIsRedacted(t *testing.T) {
	for _, format := range []string{"json", "text", "pretty"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewWithWriter(Config{Level: "debug", Format: format}, &buf)

			logger.Debug("created note", slog.String("id", "n1"), slog.String("content", "my diary secret"))

			assert.Contains(t, buf.String(), "n1")
			assert.NotContains(t, buf.String(), "my diary secret")
		})
	}
}

func TestPrettyWithAttrsIsRedacted(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(Config{Level: "info", Format: "pretty"}, &buf)

	logger.With(slog.String("content", "private body")).Info("hello")

	assert.Contains(t, buf.String(), "hello")
	assert.NotContains(t, buf.String(), "private body")
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atlas.log")
	var console bytes.Buffer
	logger := NewWithWriter(Config{
		Level:  "info",
		Format: "text",
		File:   FileConfig{Enabled: true, Path: path, MaxSizeMB: 1},
	}, &console)

	logger.Info("to both")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to both")
	assert.Contains(t, console.String(), "to both")
}

func TestTeeHandlerKeepsPerSideLevels(t *testing.T) {
	var console, file bytes.Buffer
	logger := slog.New(newTeeHandler(
		slog.NewJSONHandler(&console, &slog.HandlerOptions{Level: slog.LevelWarn}),
		slog.NewJSONHandler(&file, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)).WithGroup("repo").With("notes", 3)

	logger.Debug("loaded")
	logger.Warn("slow save")

	assert.NotContains(t, console.String(), "loaded")
	assert.Contains(t, console.String(), "slow save")
	assert.Contains(t, file.String(), "loaded")
	assert.Contains(t, file.String(), `"repo":{"notes":3}`)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelWarn},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestSlogToCharmLevel(t *testing.T) {
	assert.Equal(t, log.DebugLevel, slogToCharmLevel(slog.Level(-8)))
	assert.Equal(t, log.InfoLevel, slogToCharmLevel(slog.LevelInfo))
	assert.Equal(t, log.WarnLevel, slogToCharmLevel(slog.LevelWarn))
	assert.Equal(t, log.ErrorLevel, slogToCharmLevel(slog.Level(12)))
}
