package input

import (
	"log/slog"
	"time"

	"switchscan/internal/clock"
	"switchscan/internal/domain"
	"switchscan/internal/eventbus"
	"switchscan/internal/loop"
	"switchscan/internal/slogs"
)

type press struct {
	at        time.Time
	gen       uint64
	holdIndex int
	timer     clock.Timer
	paused    bool
}

// Coordinator tracks every switch from press to release. Apart from
// Recognizes, methods must be called from the engine's executor.
type Coordinator struct {
	source  clock.Source
	exec    loop.Executor
	bus     eventbus.EventBus
	opts    Options
	sink    ActionSink
	scanner Scanner

	switches  map[string]SwitchEvent
	pressed   map[string]*press
	lastPress map[string]time.Time
	gen       uint64
}

// NewCoordinator creates a coordinator over a fixed switch table
func NewCoordinator(source clock.Source, exec loop.Executor, bus eventbus.EventBus,
	switches []SwitchEvent, opts Options, sink ActionSink, scanner Scanner) *Coordinator {
	if bus == nil {
		bus = eventbus.Null{}
	}
	table := make(map[string]SwitchEvent, len(switches))
	for _, sw := range switches {
		table[sw.Code] = sw
	}
	return &Coordinator{
		source:    source,
		exec:      exec,
		bus:       bus,
		opts:      opts,
		sink:      sink,
		scanner:   scanner,
		switches:  table,
		pressed:   make(map[string]*press),
		lastPress: make(map[string]time.Time),
	}
}

// Recognizes reports whether code belongs to a configured switch. The
// table never changes, so this is safe from any goroutine.
func (c *Coordinator) Recognizes(code string) bool {
	_, ok := c.switches[code]
	return ok
}

// Pressed reports whether code is currently held down
func (c *Coordinator) Pressed(code string) bool {
	_, ok := c.pressed[code]
	return ok
}

// OnPress absorbs a press. Returns false for unknown codes.
func (c *Coordinator) OnPress(code string) bool {
	sw, ok := c.switches[code]
	if !ok {
		slog.Debug("Unknown switch pressed", slogs.Code, code)
		return false
	}
	if _, down := c.pressed[code]; down {
		return true
	}

	now := c.source.Now()
	if c.opts.IgnoreRepeat {
		if last, ok := c.lastPress[code]; ok && now.Sub(last) < c.opts.IgnoreRepeatDelay {
			slog.Debug("Repeated press ignored", slogs.Code, code, slogs.Duration, now.Sub(last))
			return true
		}
	}
	c.lastPress[code] = now

	c.gen++
	p := &press{at: now, gen: c.gen}
	c.pressed[code] = p
	c.bus.Publish(domain.SwitchPressedEvent{Code: code, Name: sw.Name})

	if c.scanner != nil && (c.opts.PauseOnHold || c.scanner.PauseOnHoldRequired()) {
		c.scanner.Pause()
		p.paused = true
	}
	if len(sw.HoldActions) > 0 {
		c.armHold(code, p)
	}
	return true
}

// OnRelease finishes a press. A short press, or a long press of a switch
// without hold actions, fires the press action. Returns false for unknown codes.
func (c *Coordinator) OnRelease(code string) bool {
	sw, ok := c.switches[code]
	if !ok {
		return false
	}
	p, ok := c.pressed[code]
	if !ok {
		return true
	}
	delete(c.pressed, code)
	if p.timer != nil {
		p.timer.Stop()
	}

	held := c.source.Now().Sub(p.at)
	c.bus.Publish(domain.SwitchReleasedEvent{Code: code, Held: held})

	if p.holdIndex == 0 {
		c.fire(sw, sw.PressAction, false)
	}
	if p.paused {
		c.scanner.Resume()
	}
	return true
}

// Reset forgets every held switch and its pending hold actions
func (c *Coordinator) Reset() {
	for code, p := range c.pressed {
		if p.timer != nil {
			p.timer.Stop()
		}
		delete(c.pressed, code)
	}
	c.gen++
}

func (c *Coordinator) armHold(code string, p *press) {
	gen := p.gen
	p.timer = c.source.AfterFunc(c.opts.HoldTime, func() {
		c.exec.Post(func() { c.holdElapsed(code, gen) })
	})
}

func (c *Coordinator) holdElapsed(code string, gen uint64) {
	p, ok := c.pressed[code]
	if !ok || p.gen != gen {
		return
	}
	sw := c.switches[code]
	if p.holdIndex >= len(sw.HoldActions) {
		return
	}
	action := sw.HoldActions[p.holdIndex]
	p.holdIndex++
	if p.holdIndex < len(sw.HoldActions) {
		c.armHold(code, p)
	} else {
		p.timer = nil
	}
	c.fire(sw, action, true)
}

func (c *Coordinator) fire(sw SwitchEvent, action Action, hold bool) {
	if action == ActionNone || action == "" {
		return
	}
	slog.Debug("Switch action", slogs.Switch, sw.Name, slogs.Action, action, "hold", hold)
	c.bus.Publish(domain.ActionFiredEvent{Code: sw.Code, Action: string(action), Hold: hold})
	if c.sink != nil {
		c.sink.HandleAction(action, sw)
	}
}
