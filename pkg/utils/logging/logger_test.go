package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestLogFileName(t *testing.T) {
	now := time.Date(2025, 2, 3, 14, 5, 6, 0, time.UTC)

	assert.Equal(t, filepath.Join("logs", "test_2025-02-03_14-05-06.log"), logFileName("logs", "test", now))
	assert.Equal(t, filepath.Join("out", "default_2025-02-03_14-05-06.log"), logFileName("out", "", now))
}

func TestNewLogger_ConsoleInfoFileDebug(t *testing.T) {
	var console, file bytes.Buffer
	logger := newLogger(zapcore.AddSync(&console), zapcore.InfoLevel, zapcore.AddSync(&file))

	logger.Debug("debug only", zap.String("day", "Mon"))
	logger.Info("scheduled", zap.Int("warnings", 2))
	require.NoError(t, logger.Sync())

	assert.NotContains(t, console.String(), "debug only")
	assert.Contains(t, console.String(), "scheduled")

	lines := strings.Split(strings.TrimSpace(file.String()), "\n")
	require.Len(t, lines, 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "debug only", entry["msg"])
	assert.Equal(t, "Mon", entry["day"])
	assert.Contains(t, entry, "timestamp")
}

func TestNewLogger_VerboseConsole(t *testing.T) {
	var console, file bytes.Buffer
	logger := newLogger(zapcore.AddSync(&console), zapcore.DebugLevel, zapcore.AddSync(&file))

	logger.Debug("debug shown")
	require.NoError(t, logger.Sync())

	assert.Contains(t, console.String(), "debug shown")
}

func TestInitLogger_CreatesLogFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	logger, err := InitLogger("test", Options{Dir: dir})
	require.NoError(t, err)
	logger.Info("hello")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "test_"))
}
