package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// Reader reads and parses audit events from the log file.
type Reader struct {
	logDir string
}

// NewReader creates a new Reader for the given log directory.
func NewReader(logDir string) *Reader {
	return &Reader{logDir: logDir}
}

// ReadAll returns every event in the log in file order.
// A missing log file yields an empty slice, not an error.
func (r *Reader) ReadAll() ([]Event, error) {
	path := filepath.Join(r.logDir, LogFileName)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var e Event
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, fmt.Errorf("corrupt audit log at line %d: %w", line, err)
		}
		events = append(events, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audit log: %w", err)
	}
	return events, nil
}

// ListRuns returns all runs with summary information, most recent last.
func (r *Reader) ListRuns() ([]RunInfo, error) {
	events, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	byRun := make(map[RunID]*RunInfo)
	var order []RunID
	for _, e := range events {
		switch e.EventType {
		case EventRunStart:
			info := &RunInfo{
				RunID:      e.RunID,
				StartTime:  e.Timestamp,
				Status:     RunStatusInProgress,
				AppVersion: e.Metadata["appVersion"],
			}
			byRun[e.RunID] = info
			order = append(order, e.RunID)
		case EventRunEnd:
			info, ok := byRun[e.RunID]
			if !ok {
				continue
			}
			end := e.Timestamp
			info.EndTime = &end
			info.Status = RunStatus(e.Metadata["runStatus"])
			info.Totals = RunTotals{
				Scores:             atoi(e.Metadata["scores"]),
				PartsRenamed:       atoi(e.Metadata["partsRenamed"]),
				InstrumentsRenamed: atoi(e.Metadata["instrumentsRenamed"]),
				Unmatched:          atoi(e.Metadata["unmatched"]),
				Errors:             atoi(e.Metadata["errors"]),
			}
		}
	}

	runs := make([]RunInfo, 0, len(order))
	for _, id := range order {
		runs = append(runs, *byRun[id])
	}
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].StartTime.Before(runs[j].StartTime)
	})
	return runs, nil
}

// GetRun returns all events for a specific run.
func (r *Reader) GetRun(runID RunID) ([]Event, error) {
	events, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	var runEvents []Event
	for _, e := range events {
		if e.RunID == runID {
			runEvents = append(runEvents, e)
		}
	}
	if len(runEvents) == 0 {
		return nil, fmt.Errorf("run not found: %s", runID)
	}
	return runEvents, nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
