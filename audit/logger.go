package audit

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Category log file names. One append-only stream per event category so the
// files stay greppable offline without any parsing beyond the leading tag.
const (
	FormatErrorLog    = "format_error.log"
	UnregisteredIDLog = "unregistered_id.log"
	StatusChangeLog   = "status_change.log"
)

// TimestampFormat is used for audit lines and stored status timestamps.
const TimestampFormat = "2006-01-02 15:04:05"

// Timestamp returns the current time formatted for audit lines.
func Timestamp() string {
	return time.Now().Format(TimestampFormat)
}

// Logger appends categorized audit events to per-category log files.
// Recording is best-effort: a failed write is reported to the operational
// log and swallowed, never surfaced to the caller.
type Logger struct {
	Dir string
}

// NewLogger verifies the log directory exists and is writable, creating it
// if needed, and returns a Logger rooted there.
func NewLogger(dir string) (*Logger, error) {
	if err := ensureLogDir(dir); err != nil {
		return nil, err
	}
	return &Logger{Dir: dir}, nil
}

func ensureLogDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	// probe writability up front so a misconfigured mount fails at startup,
	// not on the first dropped audit line
	probe := filepath.Join(dir, ".write_test-"+uuid.NewString())
	if err := os.WriteFile(probe, []byte("test"), 0644); err != nil {
		return fmt.Errorf("log directory %s is not writable: %w", dir, err)
	}
	if err := os.Remove(probe); err != nil {
		log.Printf("warning: failed to remove write probe %s: %v", probe, err)
	}
	return nil
}

// RecordFormatError logs a structurally malformed payload.
// Line format: "<timestamp> FORMAT_ERROR <raw payload>"
func (l *Logger) RecordFormatError(rawPayload string) {
	line := fmt.Sprintf("%s FORMAT_ERROR %s", Timestamp(), rawPayload)
	l.appendLine(FormatErrorLog, line)
}

// RecordUnregisteredID logs a report for an id that is not on the roster
// (or cannot even be parsed as one).
// Line format: "<timestamp> UNREGISTERED_ID <raw id> payload=<raw payload>"
func (l *Logger) RecordUnregisteredID(rawID, rawPayload string) {
	line := fmt.Sprintf("%s UNREGISTERED_ID %s payload=%s", Timestamp(), rawID, rawPayload)
	l.appendLine(UnregisteredIDLog, line)
}

// RecordStatusChange logs an applied status transition. The timestamp is the
// one written to the status row, not the time of logging.
// Line format: "<timestamp> STATUS_CHANGE id=<id> old=<old> new=<new>"
func (l *Logger) RecordStatusChange(personID uint, oldStatus, newStatus int, timestamp string) {
	line := fmt.Sprintf("%s STATUS_CHANGE id=%d old=%d new=%d", timestamp, personID, oldStatus, newStatus)
	l.appendLine(StatusChangeLog, line)
}

func (l *Logger) appendLine(filename, line string) {
	path := filepath.Join(l.Dir, filename)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("audit: failed to open %s: %v", path, err)
		return
	}
	defer f.Close()

	if _, err := f.WriteString(line + "\n"); err != nil {
		log.Printf("audit: failed to append to %s: %v", path, err)
		return
	}
	if err := f.Sync(); err != nil {
		log.Printf("audit: failed to sync %s: %v", path, err)
	}
}
