// Package audit provides an audit trail for Partwise rename operations.
// It implements an append-only JSONL event log recording every rename
// decision made for a score, so a run can be inspected after the fact.
package audit

import "time"

// RunID is a unique identifier for each program execution, in UUID format.
type RunID string

// EventType represents the type of audit event.
type EventType string

const (
	// Run lifecycle events
	EventRunStart EventType = "RUN_START"
	EventRunEnd   EventType = "RUN_END"

	// Rename events
	EventRename        EventType = "RENAME"
	EventSkipUnmatched EventType = "SKIP_UNMATCHED"

	// Failure events
	EventParseFailure       EventType = "PARSE_FAILURE"
	EventConsistencyFailure EventType = "CONSISTENCY_FAILURE"
	EventError              EventType = "ERROR"

	// System events
	EventLogInitialized EventType = "LOG_INITIALIZED"
)

// OperationStatus represents the outcome of an operation.
type OperationStatus string

const (
	StatusSuccess OperationStatus = "SUCCESS"
	StatusFailure OperationStatus = "FAILURE"
	StatusSkipped OperationStatus = "SKIPPED"
)

// RunStatus represents the status of a run.
type RunStatus string

const (
	RunStatusInProgress  RunStatus = "IN_PROGRESS"
	RunStatusCompleted   RunStatus = "COMPLETED"
	RunStatusFailed      RunStatus = "FAILED"
	RunStatusInterrupted RunStatus = "INTERRUPTED"
)

// ErrorDetails contains detailed information about an error.
type ErrorDetails struct {
	ErrorType    string `json:"errorType"`
	ErrorMessage string `json:"errorMessage"`
	Operation    string `json:"operation"`
}

// Event represents a single audit record for a rename decision or
// system event.
type Event struct {
	Timestamp    time.Time         `json:"timestamp"`              // ISO 8601 format
	RunID        RunID             `json:"runId"`                  // Run identifier
	EventType    EventType         `json:"eventType"`              // Type of event
	Status       OperationStatus   `json:"status"`                 // Operation outcome
	Score        string            `json:"score,omitempty"`        // Input score path
	EntityKind   string            `json:"entityKind,omitempty"`   // "part" or "instrument"
	EntityID     string            `json:"entityId,omitempty"`     // score-part / score-instrument id
	OriginalName string            `json:"originalName,omitempty"` // Label before rename
	ProposedName string            `json:"proposedName,omitempty"` // Label after rename
	ErrorDetails *ErrorDetails     `json:"errorDetails,omitempty"` // Error information
	Metadata     map[string]string `json:"metadata,omitempty"`     // Additional metadata
}

// RunTotals contains statistics for a completed run.
type RunTotals struct {
	Scores             int `json:"scores"`
	PartsRenamed       int `json:"partsRenamed"`
	InstrumentsRenamed int `json:"instrumentsRenamed"`
	Unmatched          int `json:"unmatched"`
	Errors             int `json:"errors"`
}

// RunInfo contains metadata and summary for a run.
type RunInfo struct {
	RunID      RunID      `json:"runId"`
	StartTime  time.Time  `json:"startTime"`
	EndTime    *time.Time `json:"endTime,omitempty"`
	Status     RunStatus  `json:"status"`
	AppVersion string     `json:"appVersion"`
	Totals     RunTotals  `json:"totals"`
}

// Config holds configuration for the audit system.
type Config struct {
	LogDirectory string `json:"logDirectory"`
	Disabled     bool   `json:"disabled,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogDirectory: ".partwise/audit",
	}
}
