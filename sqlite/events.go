package sqlite

import (
	"context"
	"time"
)

// SourceEventType identifies a lifecycle event of the record source.
type SourceEventType string

const (
	SourceEventFetchStart    SourceEventType = "source.fetch.start"
	SourceEventFetchSuccess  SourceEventType = "source.fetch.success"
	SourceEventFetchFailed   SourceEventType = "source.fetch.failed"
	SourceEventInsertStart   SourceEventType = "source.insert.start"
	SourceEventInsertSuccess SourceEventType = "source.insert.success"
	SourceEventInsertFailed  SourceEventType = "source.insert.failed"
)

// SourceEvent describes one operation of the record source for observers.
type SourceEvent struct {
	Type       SourceEventType `json:"type"`
	Operation  string          `json:"operation"`
	Schema     string          `json:"schema"`
	Fields     []string        `json:"fields,omitempty"`
	Count      int             `json:"count"`
	Error      *string         `json:"error,omitempty"`
	Timestamp  int64           `json:"timestamp"`
	DurationMs *int64          `json:"durationMs,omitempty"`
}

// EventCallback handles a source event delivered through the bus.
type EventCallback func(ctx context.Context, event SourceEvent) error

func createEvent(
	eventType SourceEventType,
	operation string,
	schemaName string,
	fields []string,
	count int,
	err *string,
	startTime time.Time,
) SourceEvent {
	var duration *int64
	if !startTime.IsZero() {
		d := time.Since(startTime).Milliseconds()
		duration = &d
	}

	return SourceEvent{
		Type:       eventType,
		Operation:  operation,
		Schema:     schemaName,
		Fields:     fields,
		Count:      count,
		Error:      err,
		Timestamp:  time.Now().UnixMilli(),
		DurationMs: duration,
	}
}

// emitEvent publishes an event when a bus is configured.
func (s *Source) emitEvent(event SourceEvent) {
	if s.bus != nil {
		s.bus.Emit(string(event.Type), event)
	}
}

// Subscribe registers a callback for one source event type and returns an
// unsubscribe function.
func (s *Source) Subscribe(eventType SourceEventType, callback EventCallback) func() {
	return s.bus.Subscribe(string(eventType), callback)
}
