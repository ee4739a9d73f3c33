package audit

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LogFileName is the audit log file name inside the log directory.
const LogFileName = "partwise-audit.jsonl"

// Writer handles all write operations to the audit log.
// It implements append-only semantics with fail-fast behavior.
type Writer struct {
	mu         sync.Mutex
	file       *os.File
	writer     *bufio.Writer
	logPath    string
	currentRun RunID
}

// NewWriter creates a new Writer with the given configuration.
// It creates the log directory if it doesn't exist and opens the log
// file for appending. A brand-new log gets a LOG_INITIALIZED event.
func NewWriter(config Config) (*Writer, error) {
	if err := os.MkdirAll(config.LogDirectory, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logPath := filepath.Join(config.LogDirectory, LogFileName)

	isNewLog := false
	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		isNewLog = true
	}

	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}

	w := &Writer{
		file:    file,
		writer:  bufio.NewWriter(file),
		logPath: logPath,
	}

	if isNewLog {
		if err := w.writeEvent(Event{
			Timestamp: time.Now(),
			EventType: EventLogInitialized,
			Status:    StatusSuccess,
		}); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to write LOG_INITIALIZED event: %w", err)
		}
	}

	return w, nil
}

// StartRun initializes a new run and writes the RUN_START event.
func (w *Writer) StartRun(appVersion string) (RunID, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	runID := RunID(uuid.NewString())
	w.currentRun = runID

	err := w.writeEvent(Event{
		Timestamp: time.Now(),
		RunID:     runID,
		EventType: EventRunStart,
		Status:    StatusSuccess,
		Metadata:  map[string]string{"appVersion": appVersion},
	})
	if err != nil {
		return "", err
	}
	return runID, nil
}

// LogRename records a rename decision applied to one entity.
func (w *Writer) LogRename(score, entityKind, entityID, original, proposed string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.writeEvent(Event{
		Timestamp:    time.Now(),
		RunID:        w.currentRun,
		EventType:    EventRename,
		Status:       StatusSuccess,
		Score:        score,
		EntityKind:   entityKind,
		EntityID:     entityID,
		OriginalName: original,
		ProposedName: proposed,
	})
}

// LogSkipUnmatched records a label that resolved to no table entry.
func (w *Writer) LogSkipUnmatched(score, entityKind, entityID, name string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.writeEvent(Event{
		Timestamp:    time.Now(),
		RunID:        w.currentRun,
		EventType:    EventSkipUnmatched,
		Status:       StatusSkipped,
		Score:        score,
		EntityKind:   entityKind,
		EntityID:     entityID,
		OriginalName: name,
	})
}

// LogFailure records a failed operation on a score.
func (w *Writer) LogFailure(eventType EventType, score, operation string, opErr error) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.writeEvent(Event{
		Timestamp: time.Now(),
		RunID:     w.currentRun,
		EventType: eventType,
		Status:    StatusFailure,
		Score:     score,
		ErrorDetails: &ErrorDetails{
			ErrorType:    fmt.Sprintf("%T", opErr),
			ErrorMessage: opErr.Error(),
			Operation:    operation,
		},
	})
}

// EndRun writes the RUN_END event with the run's totals and clears the
// current run.
func (w *Writer) EndRun(status RunStatus, totals RunTotals) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	err := w.writeEvent(Event{
		Timestamp: time.Now(),
		RunID:     w.currentRun,
		EventType: EventRunEnd,
		Status:    StatusSuccess,
		Metadata: map[string]string{
			"runStatus":          string(status),
			"scores":             strconv.Itoa(totals.Scores),
			"partsRenamed":       strconv.Itoa(totals.PartsRenamed),
			"instrumentsRenamed": strconv.Itoa(totals.InstrumentsRenamed),
			"unmatched":          strconv.Itoa(totals.Unmatched),
			"errors":             strconv.Itoa(totals.Errors),
		},
	})
	w.currentRun = ""
	return err
}

// writeEvent appends one event as a JSON line and flushes it.
// Callers must hold the mutex, except during construction.
func (w *Writer) writeEvent(e Event) error {
	data, err := e.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal audit event: %w", err)
	}
	if _, err := w.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write audit event: %w", err)
	}
	if err := w.writer.WriteByte('\n'); err != nil {
		return fmt.Errorf("failed to write audit event: %w", err)
	}
	return w.writer.Flush()
}

// Close flushes and closes the underlying log file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.writer.Flush(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}

// LogPath returns the path of the log file being written.
func (w *Writer) LogPath() string {
	return w.logPath
}
