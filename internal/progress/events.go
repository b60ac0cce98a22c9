// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"time"
)

// Event is a real-time update from a Reporter.
type Event struct {
	Type      EventType // Event type indicating what happened
	Line      string    // Printed line, for EventLine
	State     State     // Reporter state after the step, for EventStep and EventFinished
	Timestamp time.Time // When the event occurred
}

// EventType represents the type of progress event.
type EventType int

const (
	// EventLine indicates the reporter printed a line.
	EventLine EventType = iota
	// EventStep indicates a step event was fully processed.
	EventStep
	// EventFinished indicates the completion banner was printed.
	EventFinished
)

// String implements the Stringer interface for EventType.
func (et EventType) String() string {
	switch et {
	case EventLine:
		return "line"
	case EventStep:
		return "step"
	case EventFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Sink is the interface for sending progress events.
type Sink interface {
	// Report sends a progress event. Implementations should be non-blocking
	// and handle the case where the receiver might not be listening.
	Report(event Event)
	// Close signals that no more events will be sent and cleans up resources.
	Close()
}

// Listener receives progress events from a Sink.
type Listener interface {
	// OnEvent is called when a progress event is received.
	OnEvent(event Event)
}

// NullSink is a no-op implementation of Sink.
type NullSink struct{}

// Report implements Sink.Report by doing nothing.
func (ns *NullSink) Report(_ Event) {}

// Close implements Sink.Close by doing nothing.
func (ns *NullSink) Close() {}

// NewNullSink creates a new NullSink.
func NewNullSink() Sink {
	return &NullSink{}
}
