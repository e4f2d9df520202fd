package coordinator

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"switchscan/internal/clock"
	"switchscan/internal/config"
	"switchscan/internal/domain"
	"switchscan/internal/eventbus"
	"switchscan/internal/input"
	"switchscan/internal/loop"
	"switchscan/internal/menu"
	"switchscan/internal/scan/cursor"
	"switchscan/internal/scan/items"
	"switchscan/internal/scan/radar"
	"switchscan/internal/scan/strategy"
	"switchscan/internal/selection"
	"switchscan/internal/slogs"
)

// Engine owns one scan session. Every public method is non-blocking and
// hands its work to the executor; collaborators are only touched there.
type Engine struct {
	cfg    *config.Config
	deps   Deps
	bus    eventbus.EventBus
	source clock.Source

	items  *items.Strategy
	cursor *cursor.Strategy
	radar  *radar.Strategy
	active domain.StrategyKind

	input  *input.Coordinator
	policy *selection.Policy
	menus  *menu.Stack

	screen      domain.Size
	fallback    clock.Timer
	fallbackGen uint64
	stopping    bool
	closed      bool
	done        chan struct{}

	mu     sync.RWMutex
	status Status
}

// New builds an engine from a validated configuration
func New(cfg *config.Config, deps Deps) (*Engine, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	switches, err := input.SwitchesFromConfig(cfg.Switches)
	if err != nil {
		return nil, fmt.Errorf("invalid switches: %w", err)
	}
	kind, err := domain.ParseStrategyKind(cfg.Scanning.Method)
	if err != nil {
		return nil, fmt.Errorf("invalid scan method: %w", err)
	}
	if deps.Exec == nil {
		return nil, errors.New("engine needs an executor")
	}
	exec := &guardedExec{inner: deps.Exec}
	deps.Exec = exec
	if deps.Source == nil {
		deps.Source = clock.RealSource{}
	}
	if deps.Bus == nil {
		deps.Bus = eventbus.Null{}
	}
	if deps.Committer == nil {
		deps.Committer = tapCommitter{dispatcher: deps.Dispatcher}
	}

	e := &Engine{
		cfg:    cfg,
		deps:   deps,
		bus:    deps.Bus,
		source: deps.Source,
		active: kind,
		done:   make(chan struct{}),
	}
	exec.e = e

	sdeps := strategy.Deps{
		Source:     deps.Source,
		Exec:       deps.Exec,
		Bus:        deps.Bus,
		Renderer:   deps.Renderer,
		Candidates: e,
	}
	e.items = items.New(sdeps, itemOptions(cfg))
	e.cursor = cursor.New(sdeps, cursorOptions(cfg))
	e.radar = radar.New(sdeps, radarOptions(cfg))

	// menus are drawn from the status snapshot, not through the renderer
	mdeps := sdeps
	mdeps.Renderer = strategy.NopRenderer{}
	mdeps.Candidates = nil
	e.menus = menu.NewStack(mdeps, itemOptions(cfg), deps.Dispatcher, e)

	e.policy = selection.NewPolicy(deps.Source, deps.Exec, deps.Bus,
		selection.OptionsFromConfig(cfg.Selection), deps.Committer, e.menus, e)
	e.input = input.NewCoordinator(deps.Source, deps.Exec, deps.Bus,
		switches, input.OptionsFromConfig(cfg.Switch), e, e)

	e.refresh()
	return e, nil
}

// SetScreen updates the screen size used by every strategy
func (e *Engine) SetScreen(size domain.Size) {
	e.post("screen", func() {
		e.screen = size
		e.items.SetScreen(size)
		e.cursor.SetScreen(size)
		e.radar.SetScreen(size)
	})
}

// SetTargets replaces the targets of the item strategy
func (e *Engine) SetTargets(targets []domain.ScanTarget) {
	e.post("targets", func() {
		e.items.SetTargets(targets)
		e.checkEmptyTargets()
	})
}

// OnPress reports whether code is a configured switch and queues the press
func (e *Engine) OnPress(code string) bool {
	if !e.input.Recognizes(code) {
		slog.Debug("Unrecognized switch", slogs.Code, code)
		return false
	}
	e.post("press", func() { e.input.OnPress(code) })
	return true
}

// OnRelease reports whether code is a configured switch and queues the release
func (e *Engine) OnRelease(code string) bool {
	if !e.input.Recognizes(code) {
		return false
	}
	e.post("release", func() { e.input.OnRelease(code) })
	return true
}

// Start starts the active strategy
func (e *Engine) Start() {
	e.post("start", e.StartScanning)
}

// Stop stops scanning and drops pending commits and menus
func (e *Engine) Stop() {
	e.post("stop", e.stopAll)
}

// SetStrategy switches the active strategy, keeping it running if the old one was
func (e *Engine) SetStrategy(kind domain.StrategyKind) {
	e.post("strategy", func() { e.setStrategy(kind) })
}

// ActiveKind returns the active strategy
func (e *Engine) ActiveKind() domain.StrategyKind {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.status.Strategy
}

// Snapshot returns the last published status
func (e *Engine) Snapshot() Status {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.status
}

// Close stops everything and releases the timers. The work runs on the
// executor; Done is closed once it has.
func (e *Engine) Close() {
	e.post("close", func() {
		if e.closed {
			return
		}
		e.closed = true
		defer close(e.done)
		e.stopAll()
		e.input.Reset()
		e.items.Close()
		e.cursor.Close()
		e.radar.Close()
	})
}

// Done is closed after Close has run on the executor
func (e *Engine) Done() <-chan struct{} {
	return e.done
}

// StartScanning starts the active strategy. Executor only.
func (e *Engine) StartScanning() {
	if e.closed {
		return
	}
	if e.menus.Open() {
		return
	}
	slog.Info("Scanning started", slogs.Strategy, e.active)
	e.strategy().Start()
	e.checkEmptyTargets()
}

// OnCandidate receives points from the cursor and radar strategies
func (e *Engine) OnCandidate(kind domain.StrategyKind, c domain.Candidate) {
	e.policy.Request(c, kind)
}

// HandleAction runs a switch action against whatever is scanning
func (e *Engine) HandleAction(action input.Action, sw input.SwitchEvent) {
	s := e.scanning()
	switch action {
	case input.ActionSelect:
		if c, ok := e.policy.Interrupt(); ok {
			e.menus.Choose(c)
			return
		}
		s.PerformSelection()
	case input.ActionNext:
		s.StepForward()
	case input.ActionPrevious:
		s.StepBackward()
	case input.ActionToggleDirection:
		s.SwapDirection()
	case input.ActionStart:
		e.StartScanning()
	case input.ActionStop:
		e.stopAll()
	case input.ActionChangeMethod:
		e.setStrategy(e.active.Next())
	case input.ActionReselect:
		if e.active == domain.StrategyCursor && !e.menus.Open() {
			e.cursor.Reselect()
		}
	case input.ActionMenu:
		if !e.menus.Open() {
			e.policy.Cancel()
			e.menus.Choose(domain.Candidate{Point: e.screen.Center()})
		}
	case input.ActionBack:
		e.menus.Pop()
	}
}

// PauseOnHoldRequired asks the scanning strategy
func (e *Engine) PauseOnHoldRequired() bool { return e.scanning().PauseOnHoldRequired() }

func (e *Engine) Pause()  { e.scanning().Pause() }
func (e *Engine) Resume() { e.scanning().Resume() }

// MenuOpened stops the main strategy while a menu scans
func (e *Engine) MenuOpened() {
	e.strategy().Stop()
	e.cancelFallback()
}

// MenuClosed restarts scanning unless the engine is stopping
func (e *Engine) MenuClosed() {
	if e.stopping || !e.cfg.Selection.AutoRestart {
		return
	}
	e.StartScanning()
}

func (e *Engine) strategy() strategy.Strategy {
	switch e.active {
	case domain.StrategyCursor:
		return e.cursor
	case domain.StrategyRadar:
		return e.radar
	default:
		return e.items
	}
}

// scanning is the strategy receiving switch actions: the top menu when one
// is open, the active strategy otherwise
func (e *Engine) scanning() strategy.Strategy {
	if s, ok := e.menus.Strategy(); ok {
		return s
	}
	return e.strategy()
}

func (e *Engine) setStrategy(kind domain.StrategyKind) {
	if kind == e.active {
		return
	}
	old := e.strategy()
	wasRunning := old.State() != domain.ScanIdle
	old.Stop()
	e.cancelFallback()
	e.policy.Cancel()

	from := e.active
	e.active = kind
	slog.Info("Scan strategy changed", "from", from, "to", kind)
	e.bus.Publish(domain.StrategyChangedEvent{From: from, To: kind})

	if wasRunning {
		e.StartScanning()
	}
}

func (e *Engine) stopAll() {
	e.stopping = true
	defer func() { e.stopping = false }()

	e.policy.Cancel()
	e.menus.Close()
	e.cancelFallback()
	e.items.Stop()
	e.cursor.Stop()
	e.radar.Stop()
	slog.Info("Scanning stopped")
}

// checkEmptyTargets arms the fallback to the cursor strategy while item
// scanning has nothing to scan
func (e *Engine) checkEmptyTargets() {
	if e.active != domain.StrategyItem || !e.items.Empty() || e.items.State() == domain.ScanIdle {
		e.cancelFallback()
		return
	}
	if e.fallback != nil {
		return
	}
	wait := e.cfg.Scanning.EmptyTargetsFallback()
	if wait <= 0 {
		return
	}
	e.fallbackGen++
	gen := e.fallbackGen
	e.fallback = e.source.AfterFunc(wait, func() {
		e.deps.Exec.Post(func() { e.fallbackExpired(gen) })
	})
	slog.Debug("No targets, cursor fallback armed", slogs.Delay, wait)
}

func (e *Engine) fallbackExpired(gen uint64) {
	if gen != e.fallbackGen {
		return
	}
	e.fallback = nil
	if e.active != domain.StrategyItem || !e.items.Empty() {
		return
	}
	slog.Info("No targets to scan, falling back to cursor scan")
	e.setStrategy(domain.StrategyCursor)
}

func (e *Engine) cancelFallback() {
	e.fallbackGen++
	if e.fallback != nil {
		e.fallback.Stop()
		e.fallback = nil
	}
}

// post queues fn on the executor
func (e *Engine) post(op string, fn func()) {
	e.deps.Exec.Post(func() {
		slog.Debug("Engine operation", slogs.Action, op)
		fn()
	})
}

// abort returns everything to idle after a failed operation
func (e *Engine) abort(err error) {
	e.bus.Publish(domain.ErrorEvent{Message: "engine operation aborted", Err: err})
	if serr := strategy.Guard(e.active, "abort", e.stopAll); serr != nil {
		slog.Error("Failed to stop after abort", slogs.Error, serr)
	}
}

func (e *Engine) refresh() {
	tree := e.items.Tree()
	st := Status{
		Strategy:      e.active,
		State:         e.strategy().State(),
		Screen:        e.screen,
		Items:         len(tree.Items),
		Targets:       tree.TargetCount(),
		CommitPending: e.policy.Pending(),
	}
	if m, ok := e.menus.Current(); ok {
		ms := &MenuStatus{Title: m.Title, Highlighted: -1, Depth: e.menus.Depth()}
		for i, entry := range m.Entries {
			ms.Entries = append(ms.Entries, entry.Label)
			if entry.Highlighted() {
				ms.Highlighted = i
			}
		}
		st.Menu = ms
	}

	e.mu.Lock()
	e.status = st
	e.mu.Unlock()
}

// guardedExec runs every engine callback, timers included, under the
// recover guard and refreshes the status snapshot afterwards
type guardedExec struct {
	inner loop.Executor
	e     *Engine
}

func (g *guardedExec) Post(fn func()) {
	g.inner.Post(func() {
		if err := strategy.Guard(g.e.active, "callback", fn); err != nil {
			g.e.abort(err)
		}
		g.e.refresh()
	})
}
