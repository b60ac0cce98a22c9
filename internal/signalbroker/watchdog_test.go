// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/matt-FFFFFF/codeviewx/internal/ctxlog"
	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type exitRecorder struct {
	mu    sync.Mutex
	codes []int
}

func (e *exitRecorder) exit(code int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.codes = append(e.codes, code)
}

func (e *exitRecorder) get() []int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return append([]int(nil), e.codes...)
}

func TestWatch_FirstSignalCancels(t *testing.T) {
	rec := &exitRecorder{}
	stubs := gostub.Stub(&ExitFunc, rec.exit)
	defer stubs.Reset()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)
	sigCh := make(chan os.Signal, 1)

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()
		Watch(ctx, sigCh, cancel)
	}()

	sigCh <- os.Interrupt

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context should be cancelled after first signal")
	}

	close(sigCh)
	wg.Wait()
	assert.Empty(t, rec.get())
}

func TestWatch_SecondSignalExits(t *testing.T) {
	rec := &exitRecorder{}
	stubs := gostub.Stub(&ExitFunc, rec.exit)
	defer stubs.Reset()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 2)

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()
		Watch(ctx, sigCh, cancel)
	}()

	sigCh <- os.Interrupt
	sigCh <- os.Interrupt

	wg.Wait()
	assert.Equal(t, []int{InterruptExitCode}, rec.get())
}

func TestWatch_DifferentSignalsDoNotExit(t *testing.T) {
	rec := &exitRecorder{}
	stubs := gostub.Stub(&ExitFunc, rec.exit)
	defer stubs.Reset()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 2)

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()
		Watch(ctx, sigCh, cancel)
	}()

	sigCh <- os.Interrupt
	sigCh <- syscall.SIGTERM

	time.Sleep(50 * time.Millisecond)
	close(sigCh)
	wg.Wait()
	assert.Empty(t, rec.get())
}

func TestWatch_ReturnsWhenContextDoneWithoutSignal(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)

	done := make(chan struct{})

	go func() {
		defer close(done)
		Watch(ctx, sigCh, cancel)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watch should return once the context is done")
	}
}
