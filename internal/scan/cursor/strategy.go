package cursor

import (
	"log/slog"
	"time"

	"switchscan/internal/clock"
	"switchscan/internal/domain"
	"switchscan/internal/scan/strategy"
	"switchscan/internal/slogs"
)

// Strategy sweeps the screen horizontally, then vertically, and reports the
// crossing point as a candidate
type Strategy struct {
	deps  strategy.Deps
	opts  Options
	clock *clock.ScanClock

	screen    domain.Size
	phase     Phase
	quadrant  QuadrantInfo
	line      int
	lockedX   int
	lastX     QuadrantInfo
	hasLastX  bool
	direction domain.Direction
	state     domain.ScanState
}

var _ strategy.Strategy = (*Strategy)(nil)

// New creates an idle cursor strategy
func New(deps strategy.Deps, opts Options) *Strategy {
	deps = deps.WithDefaults()
	if opts.LineStep <= 0 {
		opts.LineStep = 1
	}
	return &Strategy{
		deps:  deps,
		opts:  opts,
		clock: clock.NewScanClock(deps.Source, deps.Exec),
		state: domain.ScanIdle,
	}
}

func (s *Strategy) Kind() domain.StrategyKind { return domain.StrategyCursor }

func (s *Strategy) State() domain.ScanState { return s.state }

// Phase returns the live phase
func (s *Strategy) Phase() Phase { return s.phase }

// Quadrant returns the live quadrant, or the locked one during a line phase
func (s *Strategy) Quadrant() QuadrantInfo { return s.quadrant }

// LastXQuadrant returns the most recently locked X quadrant
func (s *Strategy) LastXQuadrant() (QuadrantInfo, bool) { return s.lastX, s.hasLastX }

// Line returns the position of the fine line
func (s *Strategy) Line() int { return s.line }

// Direction returns the sweep direction
func (s *Strategy) Direction() domain.Direction { return s.direction }

// SetScreen sets the swept area. A running sweep starts over.
func (s *Strategy) SetScreen(size domain.Size) {
	s.screen = size
	if s.state != domain.ScanIdle {
		s.Start()
	}
}

// Start begins a sweep on the X axis
func (s *Strategy) Start() {
	s.guard("start", func() {
		if !s.screen.Valid() {
			slog.Warn("Cursor scan needs a screen size", slogs.Strategy, s.Kind())
			return
		}
		if s.opts.Block {
			s.enter(XQuadrant, s.edgeQuadrant(strategy.AxisX))
		} else {
			s.enter(XLine, s.whole(strategy.AxisX))
		}
		s.setState(domain.ScanRunning)
		s.startClock(s.opts.InitialDelay)
	})
}

// Reselect resumes inside the last locked X quadrant, or starts over
func (s *Strategy) Reselect() {
	if !s.hasLastX || !s.screen.Valid() {
		s.Start()
		return
	}
	s.guard("reselect", func() {
		s.enter(XLine, s.lastX)
		s.setState(domain.ScanRunning)
		s.startClock(s.opts.Rate)
	})
}

func (s *Strategy) Stop() {
	s.clock.Stop()
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

func (s *Strategy) Close() {
	s.Stop()
	s.clock.Shutdown()
}

// PauseOnHoldRequired is true while a fine line moves
func (s *Strategy) PauseOnHoldRequired() bool {
	return s.state != domain.ScanIdle && s.phase.IsLine()
}

func (s *Strategy) StepForward() {
	s.guard("step", func() { s.step(domain.Forward) })
}

func (s *Strategy) StepBackward() {
	s.guard("step", func() { s.step(domain.Backward) })
}

// SwapDirection reverses the sweep. At the boundary the sweep is heading
// to, it jumps to the opposite boundary.
func (s *Strategy) SwapDirection() {
	s.direction = s.direction.Reverse()
	if s.state == domain.ScanIdle {
		return
	}

	if s.phase.IsLine() {
		switch {
		case s.quadrant.End <= s.quadrant.Start:
			s.line = s.quadrant.Start
		case s.direction == domain.Backward && s.line <= s.quadrant.Start:
			s.line = s.quadrant.End - 1
		case s.direction == domain.Forward && s.line >= s.quadrant.End-1:
			s.line = s.quadrant.Start
		}
	} else {
		last := s.quadrantCount() - 1
		switch {
		case s.direction == domain.Backward && s.quadrant.Index == 0:
			s.quadrant = s.quadrantAt(s.phase.Axis(), last)
		case s.direction == domain.Forward && s.quadrant.Index == last:
			s.quadrant = s.quadrantAt(s.phase.Axis(), 0)
		}
	}
	slog.Debug("Cursor direction swapped", slogs.Phase, s.phase, "direction", s.direction)
	s.draw()
}

// PerformSelection locks the live phase. It reports true once both
// coordinates are locked and the point was handed off.
func (s *Strategy) PerformSelection() bool {
	var chosen bool
	s.guard("select", func() { chosen = s.lock() })
	return chosen
}

func (s *Strategy) lock() bool {
	if s.state == domain.ScanIdle {
		s.Start()
		return false
	}

	switch s.phase {
	case XQuadrant:
		s.lastX = s.quadrant
		s.hasLastX = true
		slog.Debug("X quadrant locked", slogs.Quadrant, s.quadrant.Index)
		s.enter(XLine, s.quadrant)
	case XLine:
		s.lockedX = s.line
		if s.opts.Block {
			s.enter(YQuadrant, s.edgeQuadrant(strategy.AxisY))
		} else {
			s.enter(YLine, s.whole(strategy.AxisY))
		}
	case YQuadrant:
		slog.Debug("Y quadrant locked", slogs.Quadrant, s.quadrant.Index)
		s.enter(YLine, s.quadrant)
	case YLine:
		point := domain.Point{X: float64(s.lockedX), Y: float64(s.line)}
		s.Stop()
		s.choose(point)
		return true
	}
	s.restartClock()
	return false
}

func (s *Strategy) choose(point domain.Point) {
	slog.Debug("Cursor point chosen", slogs.Point, point)
	s.deps.Bus.Publish(domain.CandidateChosenEvent{Strategy: s.Kind(), Point: point})
	if s.deps.Candidates != nil {
		s.deps.Candidates.OnCandidate(s.Kind(), domain.Candidate{Point: point})
	}
}

func (s *Strategy) tick() {
	s.guard("tick", func() { s.advance(s.direction) })
}

func (s *Strategy) step(dir domain.Direction) {
	if s.state == domain.ScanIdle {
		s.Start()
		return
	}
	s.advance(dir)
}

func (s *Strategy) advance(dir domain.Direction) {
	if s.phase.IsLine() {
		if s.quadrant.End <= s.quadrant.Start {
			s.line = s.quadrant.Start
		} else if dir == domain.Backward {
			s.line -= s.opts.LineStep
			if s.line < s.quadrant.Start {
				s.line = s.quadrant.End - 1
			}
		} else {
			s.line += s.opts.LineStep
			if s.line >= s.quadrant.End {
				s.line = s.quadrant.Start
			}
		}
	} else {
		n := s.quadrantCount()
		index := (s.quadrant.Index + 1) % n
		if dir == domain.Backward {
			index = (s.quadrant.Index - 1 + n) % n
		}
		s.quadrant = s.quadrantAt(s.phase.Axis(), index)
	}
	s.draw()
}

// enter switches to phase p over the interval q, placing a line at the
// edge the sweep starts from
func (s *Strategy) enter(p Phase, q QuadrantInfo) {
	s.phase = p
	s.quadrant = q
	if p.IsLine() {
		s.line = q.Start
		if s.direction == domain.Backward && q.End > q.Start {
			s.line = q.End - 1
		}
	}
	s.draw()
}

func (s *Strategy) draw() {
	if s.phase.IsLine() {
		s.deps.Renderer.ShowLine(s.phase.Axis(), s.line)
		return
	}
	s.deps.Renderer.ShowQuadrant(s.phase.Axis(), s.quadrant.Start, s.quadrant.End)
}

func (s *Strategy) quadrantCount() int {
	if s.opts.Block {
		return Quadrants
	}
	return 1
}

func (s *Strategy) axisLength(axis strategy.Axis) int {
	if axis == strategy.AxisY {
		return int(s.screen.Height)
	}
	return int(s.screen.Width)
}

// quadrantAt splits the axis into equal slices; the last one absorbs the remainder
func (s *Strategy) quadrantAt(axis strategy.Axis, index int) QuadrantInfo {
	length := s.axisLength(axis)
	n := s.quadrantCount()
	size := length / n
	q := QuadrantInfo{Index: index, Start: index * size, End: (index + 1) * size}
	if index == n-1 {
		q.End = length
	}
	return q
}

func (s *Strategy) edgeQuadrant(axis strategy.Axis) QuadrantInfo {
	if s.direction == domain.Backward {
		return s.quadrantAt(axis, s.quadrantCount()-1)
	}
	return s.quadrantAt(axis, 0)
}

func (s *Strategy) whole(axis strategy.Axis) QuadrantInfo {
	return QuadrantInfo{Index: 0, Start: 0, End: s.axisLength(axis)}
}

func (s *Strategy) period() time.Duration {
	if s.phase.IsLine() && s.opts.FineRate > 0 {
		return s.opts.FineRate
	}
	return s.opts.Rate
}

func (s *Strategy) startClock(delay time.Duration) {
	if s.opts.Manual {
		return
	}
	if err := s.clock.Start(delay, s.period(), s.tick); err != nil {
		slog.Error("Failed to start scan clock", slogs.Strategy, s.Kind(), slogs.Error, err)
	}
}

// restartClock switches to the period of the new phase; the first move
// waits one scan period. A sweep paused by a held switch picks up the new
// period when it resumes.
func (s *Strategy) restartClock() {
	if s.opts.Manual || s.state == domain.ScanIdle {
		return
	}
	if err := s.clock.Retime(s.opts.Rate, s.period()); err != nil {
		slog.Error("Failed to retime scan clock", slogs.Strategy, s.Kind(), slogs.Error, err)
	}
}

func (s *Strategy) setState(state domain.ScanState) {
	if s.state == state {
		return
	}
	s.state = state
	s.deps.Bus.Publish(domain.ScanStateChangedEvent{Strategy: s.Kind(), State: state})
}

func (s *Strategy) guard(op string, fn func()) {
	if err := strategy.Guard(s.Kind(), op, fn); err != nil {
		s.deps.Bus.Publish(domain.ErrorEvent{Message: "cursor scan aborted", Err: err})
		s.clock.Stop()
		s.setState(domain.ScanIdle)
	}
}
