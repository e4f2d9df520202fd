package clock

import (
	"errors"
	"log/slog"
	"time"

	"switchscan/internal/loop"
	"switchscan/internal/slogs"
)

// ErrShutdown is returned when a clock is used after Shutdown
var ErrShutdown = errors.New("scan clock shut down")

// State of a ScanClock
type State int

const (
	Idle State = iota
	Running
	Paused
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "idle"
	}
}

// ScanClock drives automatic stepping. Ticks are posted to the executor,
// so ticks of one clock never overlap, and each armed timer carries the
// generation it was armed with; a timer that fires after the clock moved
// on does nothing.
type ScanClock struct {
	source Source
	exec   loop.Executor

	state    State
	period   time.Duration
	resume   time.Duration
	onTick   func()
	timer    Timer
	gen      uint64
	shutdown bool
}

// NewScanClock creates an idle clock
func NewScanClock(source Source, exec loop.Executor) *ScanClock {
	return &ScanClock{source: source, exec: exec}
}

// Start cancels any running timer, waits initialDelay, then calls onTick every period
func (c *ScanClock) Start(initialDelay, period time.Duration, onTick func()) error {
	if c.shutdown {
		return ErrShutdown
	}
	if period <= 0 {
		return errors.New("scan clock period must be positive")
	}
	if initialDelay < 0 {
		initialDelay = 0
	}

	c.cancel()
	c.period = period
	c.resume = 0
	c.onTick = onTick
	c.state = Running
	c.arm(initialDelay)

	slog.Debug("Scan clock started", slogs.Delay, initialDelay, slogs.Period, period)
	return nil
}

// Pause stops ticking but keeps the period for Resume
func (c *ScanClock) Pause() {
	if c.shutdown || c.state != Running {
		return
	}
	c.cancel()
	c.state = Paused
}

// Resume restarts ticking after a fresh period, not the remaining time.
// A clock retimed while paused waits the delay given to Retime instead.
func (c *ScanClock) Resume() {
	if c.shutdown || c.state != Paused {
		return
	}
	wait := c.period
	if c.resume > 0 {
		wait = c.resume
		c.resume = 0
	}
	c.state = Running
	c.arm(wait)
}

// Retime switches to a new period and keeps the current state. A running
// clock ticks next after delay; a paused one waits delay once resumed.
// An idle clock is left alone.
func (c *ScanClock) Retime(delay, period time.Duration) error {
	if c.shutdown {
		return ErrShutdown
	}
	if period <= 0 {
		return errors.New("scan clock period must be positive")
	}
	if delay < 0 {
		delay = 0
	}

	switch c.state {
	case Running:
		c.cancel()
		c.period = period
		c.arm(delay)
	case Paused:
		c.period = period
		c.resume = delay
	default:
		return nil
	}
	slog.Debug("Scan clock retimed", slogs.Delay, delay, slogs.Period, period, "state", c.state)
	return nil
}

// Stop cancels the clock and forgets its configuration
func (c *ScanClock) Stop() {
	if c.shutdown {
		return
	}
	c.cancel()
	c.state = Idle
	c.period = 0
	c.resume = 0
	c.onTick = nil
}

// Shutdown releases the timer. The clock cannot be started again.
func (c *ScanClock) Shutdown() {
	if c.shutdown {
		return
	}
	c.Stop()
	c.shutdown = true
}

// State returns the current clock state
func (c *ScanClock) State() State {
	return c.state
}

// Period returns the configured tick period, zero when idle
func (c *ScanClock) Period() time.Duration {
	return c.period
}

func (c *ScanClock) cancel() {
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *ScanClock) arm(wait time.Duration) {
	gen := c.gen
	c.timer = c.source.AfterFunc(wait, func() {
		c.exec.Post(func() { c.fire(gen) })
	})
}

func (c *ScanClock) fire(gen uint64) {
	if gen != c.gen || c.state != Running || c.shutdown {
		return
	}
	tick := c.onTick
	c.arm(c.period)
	if tick != nil {
		tick()
	}
}
