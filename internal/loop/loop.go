// Package loop provides the single logical execution context the engine
// runs on. Every timer callback and every switch event is posted here,
// so scan state is only ever touched from one goroutine at a time.
package loop

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"

	"switchscan/internal/slogs"
)

// Executor runs posted functions one at a time, in order
type Executor interface {
	Post(fn func())
}

// Serial is an Executor backed by one goroutine and an unbounded FIFO.
// Post never blocks, so posting from inside a running function is safe.
type Serial struct {
	mu      sync.Mutex
	queue   []func()
	wake    chan struct{}
	stopped bool
}

// NewSerial creates an executor; nothing runs until Run is called
func NewSerial() *Serial {
	return &Serial{wake: make(chan struct{}, 1)}
}

// Post queues fn. Functions posted after Run returned are dropped.
func (s *Serial) Post(fn func()) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.queue = append(s.queue, fn)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Run executes queued functions until ctx is cancelled
func (s *Serial) Run(ctx context.Context) error {
	defer func() {
		s.mu.Lock()
		s.stopped = true
		s.queue = nil
		s.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.wake:
		}

		for {
			s.mu.Lock()
			if len(s.queue) == 0 {
				s.mu.Unlock()
				break
			}
			fn := s.queue[0]
			s.queue[0] = nil
			s.queue = s.queue[1:]
			s.mu.Unlock()

			s.run(fn)

			if ctx.Err() != nil {
				return nil
			}
		}
	}
}

func (s *Serial) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Loop task panicked",
				slogs.Component, "loop", slogs.Error, r, slogs.Stack, string(debug.Stack()))
		}
	}()
	fn()
}

// Inline runs posted functions immediately on the caller's goroutine.
// Nested posts are queued and run after the current function returns,
// which keeps the ordering of Serial without a goroutine.
type Inline struct {
	mu      sync.Mutex
	running bool
	queue   []func()
}

// Post runs fn now, or after the function currently running
func (in *Inline) Post(fn func()) {
	in.mu.Lock()
	in.queue = append(in.queue, fn)
	if in.running {
		in.mu.Unlock()
		return
	}
	in.running = true
	in.mu.Unlock()

	for {
		in.mu.Lock()
		if len(in.queue) == 0 {
			in.running = false
			in.mu.Unlock()
			return
		}
		next := in.queue[0]
		in.queue = in.queue[1:]
		in.mu.Unlock()

		next()
	}
}
