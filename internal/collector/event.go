package collector

import (
	"encoding/json"
	"fmt"
)

// Event is one audit record received from a client and persisted as a single
// JSON line. It is immutable once enqueued. Keep it transport-agnostic so the
// file writer and mirror sinks can fan out.
type Event struct {
	Timestamp string          `json:"timestamp"`
	Source    string          `json:"source"`
	EventType string          `json:"event_type"`
	Detail    json.RawMessage `json:"detail,omitempty"`
}

// ParseEvent parses one wire line into an Event. Parsing is structural only:
// the line must be a JSON object with non-empty timestamp, source and
// event_type strings. No schema validation beyond that; detail passes through
// byte-for-byte so re-serialization cannot fail for anything that parsed.
func ParseEvent(line []byte) (Event, error) {
	var evt Event
	if err := json.Unmarshal(line, &evt); err != nil {
		return Event{}, fmt.Errorf("parse event: %w", err)
	}
	if evt.Timestamp == "" {
		return Event{}, fmt.Errorf("parse event: missing timestamp")
	}
	if evt.Source == "" {
		return Event{}, fmt.Errorf("parse event: missing source")
	}
	if evt.EventType == "" {
		return Event{}, fmt.Errorf("parse event: missing event_type")
	}
	return evt, nil
}

// Encode serializes the event as one JSON line, trailing newline included.
func (e Event) Encode() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encode event: %w", err)
	}
	return append(data, '\n'), nil
}
