// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestEventType_String(t *testing.T) {
	tests := []struct {
		name      string
		eventType EventType
		expected  string
	}{
		{name: "EventLine", eventType: EventLine, expected: "line"},
		{name: "EventStep", eventType: EventStep, expected: "step"},
		{name: "EventFinished", eventType: EventFinished, expected: "finished"},
		{name: "Unknown event type", eventType: EventType(999), expected: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.eventType.String())
		})
	}
}

func TestNullSink(t *testing.T) {
	sink := NewNullSink()
	require.NotNil(t, sink)

	// These should not panic
	sink.Report(Event{Type: EventLine, Line: "test", Timestamp: time.Now()})
	sink.Close()
}

func TestChannelSink(t *testing.T) {
	sink := NewChannelSink(context.Background(), 10)
	require.NotNil(t, sink)

	event := Event{Type: EventLine, Line: "📖 Reading: ✓ 3 lines", Timestamp: time.Now()}
	sink.Report(event)

	select {
	case received := <-sink.Events():
		assert.Equal(t, event.Type, received.Type)
		assert.Equal(t, event.Line, received.Line)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Event not received within timeout")
	}

	sink.Close()

	// Closed sinks drop events
	sink.Report(Event{Type: EventFinished})
}

func TestChannelSink_BufferOverflow(t *testing.T) {
	sink := NewChannelSink(context.Background(), 1)

	sink.Report(Event{Type: EventLine, Line: "1"})
	// This should not block due to the non-blocking send
	sink.Report(Event{Type: EventLine, Line: "2"})

	sink.Close()
}

type mockListener struct {
	mu     sync.Mutex
	events []Event
}

func (ml *mockListener) OnEvent(event Event) {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	ml.events = append(ml.events, event)
}

func TestChannelSink_Listen(t *testing.T) {
	sink := NewChannelSink(context.Background(), 10)
	listener := &mockListener{}
	sink.Listen(listener)

	events := []Event{
		{Type: EventLine, Line: "first"},
		{Type: EventStep, State: State{Steps: 1}},
		{Type: EventFinished, State: State{Steps: 1}},
	}

	for _, event := range events {
		sink.Report(event)
	}

	// Close drains the channel before returning.
	sink.Close()

	listener.mu.Lock()
	defer listener.mu.Unlock()

	require.Len(t, listener.events, len(events))

	for i, expected := range events {
		assert.Equal(t, expected.Type, listener.events[i].Type)
		assert.Equal(t, expected.Line, listener.events[i].Line)
	}
}
