package radar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"switchscan/internal/clock"
	"switchscan/internal/clock/clocktest"
	"switchscan/internal/domain"
	"switchscan/internal/eventbus"
	"switchscan/internal/loop"
	"switchscan/internal/scan/strategy"
	"switchscan/internal/scan/strategy/strategytest"
)

var screen = domain.Size{Width: 1000, Height: 800}

func newStrategy(manual bool) (*Strategy, *clocktest.Fake, *strategytest.Candidates) {
	fake := clocktest.New()
	candidates := &strategytest.Candidates{}
	s := New(strategy.Deps{
		Source:     fake,
		Exec:       &loop.Inline{},
		Bus:        eventbus.NewSync(),
		Renderer:   &strategytest.Renderer{},
		Candidates: candidates,
	}, Options{
		Manual:       manual,
		Rate:         time.Second,
		InitialDelay: time.Second,
		FineRate:     50 * time.Millisecond,
		AngleStep:    90,
		RadiusStep:   200,
	})
	s.SetScreen(screen)
	return s, fake, candidates
}

func TestMaxRadiusClampsToEdge(t *testing.T) {
	assert.InDelta(t, 500, MaxRadius(screen, 0), 1e-6)
	assert.InDelta(t, 400, MaxRadius(screen, 90), 1e-6)
	assert.InDelta(t, 500, MaxRadius(screen, 180), 1e-6)
	assert.InDelta(t, 400, MaxRadius(screen, 270), 1e-6)
	assert.InDelta(t, 565.685, MaxRadius(screen, 45), 1e-3)
}

func TestPointAtStaysOnScreen(t *testing.T) {
	p := PointAt(screen, 0, 10000)
	assert.Equal(t, 1000.0, p.X)
	assert.InDelta(t, 400, p.Y, 1e-6)
}

func TestRotationWraps(t *testing.T) {
	s, _, _ := newStrategy(true)
	s.Start()
	assert.Equal(t, Rotate, s.Phase())

	s.StepBackward()
	assert.Equal(t, 270.0, s.Angle())

	for range 4 {
		s.StepForward()
	}
	assert.Equal(t, 270.0, s.Angle())
}

func TestRadialPointBouncesBetweenCentreAndEdge(t *testing.T) {
	s, _, candidates := newStrategy(true)
	s.Start()
	s.StepForward()
	assert.False(t, s.PerformSelection())
	require.Equal(t, Radial, s.Phase())
	assert.True(t, s.PauseOnHoldRequired())

	s.StepForward()
	assert.Equal(t, 200.0, s.Radius())
	s.StepForward()
	assert.InDelta(t, 400, s.Radius(), 1e-6)
	assert.False(t, s.Outward())

	s.StepForward()
	assert.InDelta(t, 200, s.Radius(), 1e-6)
	s.StepForward()
	assert.Equal(t, 0.0, s.Radius())
	assert.True(t, s.Outward())

	s.StepForward()
	assert.True(t, s.PerformSelection())
	require.Len(t, candidates.Chosen, 1)
	assert.InDelta(t, 500, candidates.Chosen[0].Point.X, 1e-6)
	assert.InDelta(t, 600, candidates.Chosen[0].Point.Y, 1e-6)
	assert.Equal(t, domain.ScanIdle, s.State())
}

func TestSwapDirectionFollowsPhase(t *testing.T) {
	s, _, _ := newStrategy(true)
	s.Start()
	s.SwapDirection()
	s.PerformSelection()
	assert.True(t, s.Outward())

	s.SwapDirection()
	assert.False(t, s.Outward())
}

func TestAutoRotationTicksAtFineRate(t *testing.T) {
	s, fake, _ := newStrategy(false)
	s.Start()

	fake.Advance(time.Second)
	assert.Equal(t, 90.0, s.Angle())
	fake.Advance(50 * time.Millisecond)
	assert.Equal(t, 180.0, s.Angle())

	s.SwapDirection()
	fake.Advance(50 * time.Millisecond)
	assert.Equal(t, 90.0, s.Angle())
}

func TestPauseOnHoldNotRequiredWhileRotating(t *testing.T) {
	s, _, _ := newStrategy(true)
	s.Start()
	assert.False(t, s.PauseOnHoldRequired())
}

func TestAngleLockWhilePausedWaitsFullPeriod(t *testing.T) {
	s, fake, _ := newStrategy(false)
	s.Start()
	fake.Advance(time.Second)
	require.Equal(t, 90.0, s.Angle())

	s.Pause()
	s.PerformSelection()
	assert.Equal(t, Radial, s.Phase())
	assert.Equal(t, clock.Paused, s.clock.State())
	assert.Equal(t, 50*time.Millisecond, s.clock.Period())
	s.Resume()

	fake.Advance(999 * time.Millisecond)
	assert.Equal(t, 0.0, s.Radius())
	fake.Advance(time.Millisecond)
	assert.Equal(t, 200.0, s.Radius())
	fake.Advance(50 * time.Millisecond)
	assert.Equal(t, 400.0, s.Radius())
}
