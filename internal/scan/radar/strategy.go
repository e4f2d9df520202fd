package radar

import (
	"log/slog"
	"math"
	"time"

	"switchscan/internal/clock"
	"switchscan/internal/domain"
	"switchscan/internal/scan/strategy"
	"switchscan/internal/slogs"
)

// Strategy rotates a line until locked, then moves a point out and back
// along it until locked
type Strategy struct {
	deps  strategy.Deps
	opts  Options
	clock *clock.ScanClock

	screen    domain.Size
	phase     Phase
	angle     float64
	radius    float64
	maxRadius float64
	rotation  domain.Direction
	outward   bool
	state     domain.ScanState
}

var _ strategy.Strategy = (*Strategy)(nil)

// New creates an idle radar strategy
func New(deps strategy.Deps, opts Options) *Strategy {
	deps = deps.WithDefaults()
	if opts.AngleStep <= 0 {
		opts.AngleStep = 2
	}
	if opts.RadiusStep <= 0 {
		opts.RadiusStep = 10
	}
	return &Strategy{
		deps:  deps,
		opts:  opts,
		clock: clock.NewScanClock(deps.Source, deps.Exec),
		state: domain.ScanIdle,
	}
}

func (s *Strategy) Kind() domain.StrategyKind { return domain.StrategyRadar }

func (s *Strategy) State() domain.ScanState { return s.state }

func (s *Strategy) Phase() Phase { return s.phase }

// Angle returns the line angle in degrees, clockwise from the positive X axis
func (s *Strategy) Angle() float64 { return s.angle }

func (s *Strategy) Radius() float64 { return s.radius }

// Outward reports whether the radial point moves away from the centre
func (s *Strategy) Outward() bool { return s.outward }

func (s *Strategy) SetScreen(size domain.Size) {
	s.screen = size
	if s.state != domain.ScanIdle {
		s.Start()
	}
}

// Start begins rotating from angle zero
func (s *Strategy) Start() {
	s.guard("start", func() {
		if !s.screen.Valid() {
			slog.Warn("Radar scan needs a screen size", slogs.Strategy, s.Kind())
			return
		}
		s.phase = Rotate
		s.angle = 0
		s.radius = 0
		s.draw()
		s.setState(domain.ScanRunning)
		s.startClock(s.opts.InitialDelay)
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

// PauseOnHoldRequired is true while the point moves along the locked line
func (s *Strategy) PauseOnHoldRequired() bool {
	return s.state != domain.ScanIdle && s.phase == Radial
}

func (s *Strategy) StepForward() {
	s.guard("step", func() { s.step(true) })
}

func (s *Strategy) StepBackward() {
	s.guard("step", func() { s.step(false) })
}

// SwapDirection flips the rotation, or the radial direction once the angle is locked
func (s *Strategy) SwapDirection() {
	if s.phase == Radial && s.state != domain.ScanIdle {
		s.outward = !s.outward
	} else {
		s.rotation = s.rotation.Reverse()
	}
	slog.Debug("Radar direction swapped", slogs.Phase, s.phase)
}

// PerformSelection locks the angle, then the radius. It reports true once
// the point was handed off.
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

	if s.phase == Rotate {
		s.phase = Radial
		s.radius = 0
		s.outward = true
		s.maxRadius = MaxRadius(s.screen, s.angle)
		slog.Debug("Radar angle locked", slogs.Angle, s.angle, slogs.Radius, s.maxRadius)
		s.draw()
		s.restartClock()
		return false
	}

	point := PointAt(s.screen, s.angle, s.radius)
	s.Stop()
	slog.Debug("Radar point chosen", slogs.Point, point)
	s.deps.Bus.Publish(domain.CandidateChosenEvent{Strategy: s.Kind(), Point: point})
	if s.deps.Candidates != nil {
		s.deps.Candidates.OnCandidate(s.Kind(), domain.Candidate{Point: point})
	}
	return true
}

func (s *Strategy) tick() {
	s.guard("tick", func() {
		if s.phase == Radial {
			s.advance(s.outward)
			return
		}
		s.advance(s.rotation == domain.Forward)
	})
}

func (s *Strategy) step(forward bool) {
	if s.state == domain.ScanIdle {
		s.Start()
		return
	}
	if s.phase == Radial {
		forward = forward == s.outward
	}
	s.advance(forward)
}

// advance rotates the line, or moves the point, bouncing between the
// centre and the screen edge
func (s *Strategy) advance(forward bool) {
	if s.phase == Rotate {
		step := s.opts.AngleStep
		if !forward {
			step = -step
		}
		s.angle = math.Mod(s.angle+step+360, 360)
		s.draw()
		return
	}

	if forward {
		s.radius += s.opts.RadiusStep
	} else {
		s.radius -= s.opts.RadiusStep
	}
	switch {
	case s.radius >= s.maxRadius:
		s.radius = s.maxRadius
		s.outward = false
	case s.radius <= 0:
		s.radius = 0
		s.outward = true
	}
	s.draw()
}

func (s *Strategy) draw() {
	if s.phase == Radial {
		s.deps.Renderer.ShowRadarPoint(PointAt(s.screen, s.angle, s.radius))
		return
	}
	s.deps.Renderer.ShowRadarLine(s.screen.Center(), s.angle)
}

func (s *Strategy) fineRate() time.Duration {
	if s.opts.FineRate > 0 {
		return s.opts.FineRate
	}
	return s.opts.Rate
}

func (s *Strategy) startClock(delay time.Duration) {
	if s.opts.Manual {
		return
	}
	if err := s.clock.Start(delay, s.fineRate(), s.tick); err != nil {
		slog.Error("Failed to start scan clock", slogs.Strategy, s.Kind(), slogs.Error, err)
	}
}

// restartClock gives the radial phase a full scan period before the point
// moves, also when the lock happened while paused by a held switch
func (s *Strategy) restartClock() {
	if s.opts.Manual || s.state == domain.ScanIdle {
		return
	}
	if err := s.clock.Retime(s.opts.Rate, s.fineRate()); err != nil {
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
		s.deps.Bus.Publish(domain.ErrorEvent{Message: "radar scan aborted", Err: err})
		s.clock.Stop()
		s.setState(domain.ScanIdle)
	}
}
