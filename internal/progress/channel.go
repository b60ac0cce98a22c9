// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"context"
	"sync"
)

// ChannelSink implements Sink using a Go channel.
type ChannelSink struct {
	ch     chan Event
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
	mu     sync.RWMutex
	closed bool
}

// NewChannelSink creates a new ChannelSink with the specified buffer size.
func NewChannelSink(ctx context.Context, bufferSize int) *ChannelSink {
	sinkCtx, cancel := context.WithCancel(ctx)

	return &ChannelSink{
		ch:     make(chan Event, bufferSize),
		ctx:    sinkCtx,
		cancel: cancel,
	}
}

// Report implements Sink.Report.
// Events are dropped when the buffer is full or the sink is closed.
func (cs *ChannelSink) Report(event Event) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	if cs.closed {
		return
	}

	select {
	case cs.ch <- event:
	case <-cs.ctx.Done():
	default:
	}
}

// Close implements Sink.Close.
// It closes the channel and waits for the listener to drain it.
func (cs *ChannelSink) Close() {
	cs.once.Do(func() {
		cs.mu.Lock()
		cs.closed = true
		close(cs.ch)
		cs.mu.Unlock()
		cs.wg.Wait()
		cs.cancel()
	})
}

// Listen forwards events to the listener on a new goroutine until the sink is closed
// or its context is cancelled.
func (cs *ChannelSink) Listen(listener Listener) {
	cs.wg.Add(1)

	go func() {
		defer cs.wg.Done()

		for {
			select {
			case event, ok := <-cs.ch:
				if !ok {
					return
				}

				listener.OnEvent(event)
			case <-cs.ctx.Done():
				return
			}
		}
	}()
}

// Events returns a read-only channel of progress events.
func (cs *ChannelSink) Events() <-chan Event {
	return cs.ch
}
