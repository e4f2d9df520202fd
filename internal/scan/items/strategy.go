package items

import (
	"log/slog"
	"time"

	"switchscan/internal/clock"
	"switchscan/internal/domain"
	"switchscan/internal/scan/grouping"
	"switchscan/internal/scan/navigation"
	"switchscan/internal/scan/strategy"
	"switchscan/internal/slogs"
)

// Strategy highlights items, then groups, then single targets, and selects
// the target under the cursor
type Strategy struct {
	deps  strategy.Deps
	opts  Options
	nav   *navigation.Service
	clock *clock.ScanClock

	targets     []domain.ScanTarget
	tree        grouping.Tree
	highlighted []domain.ScanTarget
	state       domain.ScanState
}

var _ strategy.Strategy = (*Strategy)(nil)

// New creates an idle item strategy
func New(deps strategy.Deps, opts Options) *Strategy {
	deps = deps.WithDefaults()
	nav := navigation.NewService(deps.Bus)
	nav.SetGroupScan(opts.GroupScan)
	return &Strategy{
		deps:  deps,
		opts:  opts,
		nav:   nav,
		clock: clock.NewScanClock(deps.Source, deps.Exec),
		state: domain.ScanIdle,
	}
}

func (s *Strategy) Kind() domain.StrategyKind { return domain.StrategyItem }

func (s *Strategy) State() domain.ScanState { return s.state }

// Navigator exposes the cursor for inspection
func (s *Strategy) Navigator() *navigation.Service { return s.nav }

// Tree returns the last built tree
func (s *Strategy) Tree() grouping.Tree { return s.tree }

// Empty reports whether there is nothing to scan
func (s *Strategy) Empty() bool { return len(s.tree.Items) == 0 }

// SetScreen updates the screen used by the oversize filter and rebuilds the tree
func (s *Strategy) SetScreen(size domain.Size) {
	s.opts.Grouping.Screen = size
	if s.targets != nil {
		s.SetTargets(s.targets)
	}
}

// SetTargets rebuilds the scan tree. The cursor returns to the first item.
func (s *Strategy) SetTargets(targets []domain.ScanTarget) {
	s.guard("build", func() {
		s.clearHighlight()
		s.targets = targets
		s.tree = grouping.BuildTree(targets, s.opts.Grouping)
		s.nav.SetTree(s.tree.Items)

		for _, ex := range s.tree.Excluded {
			slog.Debug("Target excluded from scan", slogs.Item, ex.Target, "reason", ex.Reason)
		}
		slog.Debug("Scan tree rebuilt",
			slogs.Count, len(s.tree.Items), "targets", s.tree.TargetCount(), "excluded", len(s.tree.Excluded))
		s.deps.Bus.Publish(domain.TargetsUpdatedEvent{
			Items:    len(s.tree.Items),
			Targets:  s.tree.TargetCount(),
			Excluded: len(s.tree.Excluded),
		})

		if s.state != domain.ScanIdle {
			s.redraw()
		}
	})
}

// Start begins scanning at the first item
func (s *Strategy) Start() {
	s.guard("start", func() {
		s.nav.Reset()
		s.setState(domain.ScanRunning)
		s.redraw()
		s.startClock(s.opts.InitialDelay)
	})
}

// Stop ends scanning and forgets the cursor position
func (s *Strategy) Stop() {
	s.clock.Stop()
	s.clearHighlight()
	s.nav.Reset()
	s.deps.Renderer.ClearOverlay()
	s.setState(domain.ScanIdle)
}

func (s *Strategy) Pause() {
	if s.state != domain.ScanRunning {
		return
	}
	s.clock.Pause()
	s.setState(domain.ScanPaused)
}

func (s *Strategy) Resume() {
	if s.state != domain.ScanPaused {
		return
	}
	s.clock.Resume()
	s.setState(domain.ScanRunning)
}

// Close releases the clock
func (s *Strategy) Close() {
	s.Stop()
	s.clock.Shutdown()
}

func (s *Strategy) PauseOnHoldRequired() bool { return false }

// StepForward moves one position forward. An idle strategy starts instead.
func (s *Strategy) StepForward() {
	s.guard("step", func() { s.step(domain.Forward) })
}

// StepBackward moves one position backward. An idle strategy starts instead.
func (s *Strategy) StepBackward() {
	s.guard("step", func() { s.step(domain.Backward) })
}

// SwapDirection reverses the direction used by the clock
func (s *Strategy) SwapDirection() {
	s.nav.SwapDirection()
	slog.Debug("Scan direction swapped", slogs.Strategy, s.Kind(), "direction", s.nav.State().Direction)
}

// PerformSelection descends one level or selects the highlighted target.
// It reports whether a target was selected.
func (s *Strategy) PerformSelection() bool {
	var selected bool
	s.guard("select", func() { selected = s.selectCurrent() })
	return selected
}

func (s *Strategy) selectCurrent() bool {
	if s.state == domain.ScanIdle {
		s.Start()
		return false
	}

	st := s.nav.State()
	if st.ShouldEscape {
		s.nav.ConfirmEscape()
		s.redraw()
		s.restartClock()
		return false
	}

	if !st.InsideItem {
		item, ok := s.nav.CurrentItem()
		if !ok {
			return false
		}
		if item.Columns() == 1 {
			s.selectTarget(item.Targets()[0])
			return true
		}
		s.nav.EnterItem()
		s.redraw()
		s.restartClock()
		return false
	}

	if st.ScanningGroups {
		group, ok := s.nav.CurrentGroup()
		if !ok {
			return false
		}
		if len(group) == 1 {
			s.selectTarget(group[0])
			return true
		}
		s.nav.EnterGroup()
		s.redraw()
		s.restartClock()
		return false
	}

	target, ok := s.nav.CurrentTarget()
	if !ok {
		return false
	}
	s.selectTarget(target)
	return true
}

func (s *Strategy) selectTarget(target domain.ScanTarget) {
	s.clearHighlight()
	bounds := target.Bounds()
	target.Select()
	slog.Debug("Target selected", slogs.Strategy, s.Kind(), "bounds", bounds)
	s.deps.Bus.Publish(domain.TargetSelectedEvent{Bounds: bounds})

	if s.opts.StopOnSelect {
		s.Stop()
		return
	}
	s.nav.LeaveItem()
	s.redraw()
	s.restartClock()
}

func (s *Strategy) tick() {
	s.guard("tick", func() {
		if s.nav.State().Direction == domain.Backward {
			s.advance(domain.Backward)
			return
		}
		s.advance(domain.Forward)
	})
}

func (s *Strategy) step(dir domain.Direction) {
	if s.state == domain.ScanIdle {
		s.Start()
		return
	}
	s.advance(dir)
}

// advance moves the cursor; a pending escape is denied by any step
func (s *Strategy) advance(dir domain.Direction) {
	if s.nav.State().ShouldEscape {
		s.nav.DenyEscape()
	} else if dir == domain.Backward {
		s.nav.MovePrevious()
	} else {
		s.nav.MoveNext()
	}
	s.redraw()
}

func (s *Strategy) startClock(delay time.Duration) {
	if s.opts.Manual {
		return
	}
	if err := s.clock.Start(delay, s.opts.Rate, s.tick); err != nil {
		slog.Error("Failed to start scan clock", slogs.Strategy, s.Kind(), slogs.Error, err)
	}
}

// restartClock gives the new highlight a full period
func (s *Strategy) restartClock() {
	if s.opts.Manual || s.state == domain.ScanIdle {
		return
	}
	if err := s.clock.Retime(s.opts.Rate, s.opts.Rate); err != nil {
		slog.Error("Failed to retime scan clock", slogs.Strategy, s.Kind(), slogs.Error, err)
	}
}

func (s *Strategy) redraw() {
	s.clearHighlight()
	focus := s.nav.Focus()
	if len(focus.Targets) == 0 {
		return
	}
	for _, t := range focus.Targets {
		t.Highlight()
	}
	s.highlighted = focus.Targets
	s.deps.Renderer.ShowHighlight(focus.Level, focus.Bounds, focus.Escaping)
}

func (s *Strategy) clearHighlight() {
	for _, t := range s.highlighted {
		t.Unhighlight()
	}
	s.highlighted = nil
}

func (s *Strategy) setState(state domain.ScanState) {
	if s.state == state {
		return
	}
	s.state = state
	s.deps.Bus.Publish(domain.ScanStateChangedEvent{Strategy: s.Kind(), State: state})
}

// guard aborts the cycle to Idle when fn panics
func (s *Strategy) guard(op string, fn func()) {
	if err := strategy.Guard(s.Kind(), op, fn); err != nil {
		s.deps.Bus.Publish(domain.ErrorEvent{Message: "item scan aborted", Err: err})
		s.abort()
	}
}

func (s *Strategy) abort() {
	s.clock.Stop()
	s.highlighted = nil
	s.nav.Reset()
	s.setState(domain.ScanIdle)
}
