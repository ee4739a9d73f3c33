package audit

import (
	"encoding/json"
	"time"
)

// ISO8601Format is the time format used for audit event timestamps.
const ISO8601Format = time.RFC3339

// eventJSON is the internal representation for JSON marshaling.
// It uses pointers for optional fields to properly handle omitempty.
type eventJSON struct {
	Timestamp    string            `json:"timestamp"`
	RunID        RunID             `json:"runId"`
	EventType    EventType         `json:"eventType"`
	Status       OperationStatus   `json:"status"`
	Score        *string           `json:"score,omitempty"`
	EntityKind   *string           `json:"entityKind,omitempty"`
	EntityID     *string           `json:"entityId,omitempty"`
	OriginalName *string           `json:"originalName,omitempty"`
	ProposedName *string           `json:"proposedName,omitempty"`
	ErrorDetails *ErrorDetails     `json:"errorDetails,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// MarshalJSON implements json.Marshaler for Event. Timestamps are in
// ISO 8601 format and optional fields are omitted when empty.
func (e Event) MarshalJSON() ([]byte, error) {
	ej := eventJSON{
		Timestamp:    e.Timestamp.Format(ISO8601Format),
		RunID:        e.RunID,
		EventType:    e.EventType,
		Status:       e.Status,
		ErrorDetails: e.ErrorDetails,
		Metadata:     e.Metadata,
	}

	setIfNonEmpty := func(dst **string, v string) {
		if v != "" {
			s := v
			*dst = &s
		}
	}
	setIfNonEmpty(&ej.Score, e.Score)
	setIfNonEmpty(&ej.EntityKind, e.EntityKind)
	setIfNonEmpty(&ej.EntityID, e.EntityID)
	setIfNonEmpty(&ej.OriginalName, e.OriginalName)
	setIfNonEmpty(&ej.ProposedName, e.ProposedName)

	return json.Marshal(ej)
}

// UnmarshalJSON implements json.Unmarshaler for Event.
func (e *Event) UnmarshalJSON(data []byte) error {
	var ej eventJSON
	if err := json.Unmarshal(data, &ej); err != nil {
		return err
	}

	t, err := time.Parse(ISO8601Format, ej.Timestamp)
	if err != nil {
		return err
	}

	e.Timestamp = t
	e.RunID = ej.RunID
	e.EventType = ej.EventType
	e.Status = ej.Status
	e.ErrorDetails = ej.ErrorDetails
	e.Metadata = ej.Metadata

	take := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	take(&e.Score, ej.Score)
	take(&e.EntityKind, ej.EntityKind)
	take(&e.EntityID, ej.EntityID)
	take(&e.OriginalName, ej.OriginalName)
	take(&e.ProposedName, ej.ProposedName)

	return nil
}
