package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meteocombine/internal/config"
)

func readLogLines(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(string(content)), "\n") {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry), "log output is not valid JSON")
		entries = append(entries, entry)
	}
	return entries
}

func TestInitializeLogger(t *testing.T) {
	ResetLoggerForTesting()
	defer ResetLoggerForTesting()

	logFile := filepath.Join(t.TempDir(), "logs", "test.log")
	logger, err := InitializeLogger(config.LoggingConfig{
		Level:    "info",
		Output:   "file",
		FilePath: logFile,
	})
	require.NoError(t, err)
	require.NotNil(t, logger)

	logger.Info("test message", "key", "value")
	require.NoError(t, CloseLogFile())

	entries := readLogLines(t, logFile)
	require.Len(t, entries, 1)
	assert.Equal(t, "test message", entries[0]["msg"])
	assert.Equal(t, "value", entries[0]["key"])
	assert.Equal(t, "INFO", entries[0]["level"])
	assert.Same(t, logger, GetLogger())
}

func TestInitializeLogger_Both(t *testing.T) {
	ResetLoggerForTesting()
	defer ResetLoggerForTesting()

	var console bytes.Buffer
	consoleWriter = &console
	defer func() { consoleWriter = os.Stderr }()

	logFile := filepath.Join(t.TempDir(), "test.log")
	logger, err := InitializeLogger(config.LoggingConfig{
		Level:    "info",
		Output:   "both",
		FilePath: logFile,
	})
	require.NoError(t, err)

	logger.Info("to both")
	require.NoError(t, CloseLogFile())

	assert.Contains(t, console.String(), `"msg":"to both"`)
	assert.Len(t, readLogLines(t, logFile), 1)
}

func TestRunIDInjection(t *testing.T) {
	ResetLoggerForTesting()
	defer ResetLoggerForTesting()

	logFile := filepath.Join(t.TempDir(), "test.log")
	logger, err := InitializeLogger(config.LoggingConfig{
		Level:    "debug",
		Output:   "file",
		FilePath: logFile,
	})
	require.NoError(t, err)

	ctx := WithRunID(context.Background(), "run-123")
	logger.InfoContext(ctx, "with run")
	logger.Info("without run")
	require.NoError(t, CloseLogFile())

	entries := readLogLines(t, logFile)
	require.Len(t, entries, 2)
	assert.Equal(t, "run-123", entries[0]["run_id"])
	assert.NotContains(t, entries[1], "run_id")
}

func TestLogLevels(t *testing.T) {
	tests := []struct {
		level      string
		debugShown bool
		warnShown  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"warning", false, true},
		{"error", false, false},
		{"unknown", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			ResetLoggerForTesting()
			defer ResetLoggerForTesting()

			logFile := filepath.Join(t.TempDir(), "test.log")
			logger, err := InitializeLogger(config.LoggingConfig{
				Level:    tt.level,
				Output:   "file",
				FilePath: logFile,
			})
			require.NoError(t, err)

			logger.Debug("debug line")
			logger.Warn("warn line")
			logger.Error("error line")
			require.NoError(t, CloseLogFile())

			content, err := os.ReadFile(logFile)
			require.NoError(t, err)
			assert.Equal(t, tt.debugShown, strings.Contains(string(content), "debug line"))
			assert.Equal(t, tt.warnShown, strings.Contains(string(content), "warn line"))
			assert.Contains(t, string(content), "error line")
		})
	}
}

func TestRunIDHelpers(t *testing.T) {
	ctx := EnsureRunID(context.Background())
	runID := GetRunID(ctx)
	assert.NotEmpty(t, runID)

	assert.Equal(t, runID, GetRunID(EnsureRunID(ctx)), "EnsureRunID must keep an existing run ID")
	assert.NotEqual(t, runID, GenerateRunID())
	assert.Empty(t, GetRunID(context.Background()))
}
