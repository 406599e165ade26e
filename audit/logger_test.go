package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) *Logger {
	t.Helper()
	logger, err := NewLogger(filepath.Join(t.TempDir(), "logs"))
	require.NoError(t, err)
	return logger
}

func readLines(t *testing.T, logger *Logger, filename string) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(logger.Dir, filename))
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestNewLoggerCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "logs")
	logger, err := NewLogger(dir)
	require.NoError(t, err)

	info, err := os.Stat(logger.Dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// the writability probe must not linger
	entries, err := os.ReadDir(logger.Dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRecordFormatError(t *testing.T) {
	logger := newTestLogger(t)

	logger.RecordFormatError("5,2")

	lines := readLines(t, logger, FormatErrorLog)
	require.Len(t, lines, 1)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} FORMAT_ERROR 5,2$`, lines[0])
}

func TestRecordUnregisteredID(t *testing.T) {
	logger := newTestLogger(t)

	logger.RecordUnregisteredID("9", "5,1,9,1")

	lines := readLines(t, logger, UnregisteredIDLog)
	require.Len(t, lines, 1)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} UNREGISTERED_ID 9 payload=5,1,9,1$`, lines[0])
}

func TestRecordStatusChange(t *testing.T) {
	logger := newTestLogger(t)

	// the line carries the timestamp of the status write, not of logging
	logger.RecordStatusChange(5, 0, 1, "2025-01-02 03:04:05")

	lines := readLines(t, logger, StatusChangeLog)
	require.Len(t, lines, 1)
	assert.Equal(t, "2025-01-02 03:04:05 STATUS_CHANGE id=5 old=0 new=1", lines[0])
}

func TestRecordAppendsAcrossCalls(t *testing.T) {
	logger := newTestLogger(t)

	logger.RecordStatusChange(5, 0, 1, "2025-01-02 03:04:05")
	logger.RecordStatusChange(5, 1, 0, "2025-01-02 03:05:00")

	lines := readLines(t, logger, StatusChangeLog)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "old=0 new=1")
	assert.Contains(t, lines[1], "old=1 new=0")
}

func TestRecordSwallowsWriteFailures(t *testing.T) {
	// pointing at a directory that does not exist makes every append fail;
	// recording must still be a no-op for the caller
	logger := &Logger{Dir: filepath.Join(t.TempDir(), "missing")}

	assert.NotPanics(t, func() {
		logger.RecordFormatError("5,2")
		logger.RecordUnregisteredID("9", "payload")
		logger.RecordStatusChange(1, 0, 1, "2025-01-02 03:04:05")
	})
}

func TestNewLoggerFailsOnUnwritableDir(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("write permissions are not enforced for root")
	}
	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0555))

	_, err := NewLogger(filepath.Join(dir, "logs"))
	assert.Error(t, err)
}
