// Package strategy defines the contract shared by the scanning strategies
// and the collaborators they draw and report through.
package strategy

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"switchscan/internal/clock"
	"switchscan/internal/domain"
	"switchscan/internal/eventbus"
	"switchscan/internal/loop"
	"switchscan/internal/slogs"
)

// Strategy is one way of stepping through candidates.
// All methods must be called from the engine's executor.
type Strategy interface {
	Kind() domain.StrategyKind
	State() domain.ScanState

	Start()
	Stop()
	Pause()
	Resume()

	StepForward()
	StepBackward()
	SwapDirection()

	// PerformSelection locks the current candidate. It reports whether a
	// final selection was made, as opposed to descending a level.
	PerformSelection() bool

	// PauseOnHoldRequired reports whether the candidate would drift while a
	// switch is held, so scanning must pause for the whole press
	PauseOnHoldRequired() bool

	SetScreen(size domain.Size)
	Close()
}

// Axis of the cursor strategy
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisY {
		return "y"
	}
	return "x"
}

// Renderer draws scan overlays. Calls are fire-and-forget; the engine never
// waits for drawing to finish.
type Renderer interface {
	ShowHighlight(level domain.HighlightLevel, bounds domain.Rect, escaping bool)
	ShowQuadrant(axis Axis, start, end int)
	ShowLine(axis Axis, pos int)
	ShowRadarLine(center domain.Point, angleDeg float64)
	ShowRadarPoint(p domain.Point)
	ClearOverlay()
}

// NopRenderer draws nothing
type NopRenderer struct{}

func (NopRenderer) ShowHighlight(domain.HighlightLevel, domain.Rect, bool) {}
func (NopRenderer) ShowQuadrant(Axis, int, int)                           {}
func (NopRenderer) ShowLine(Axis, int)                                    {}
func (NopRenderer) ShowRadarLine(domain.Point, float64)                   {}
func (NopRenderer) ShowRadarPoint(domain.Point)                           {}
func (NopRenderer) ClearOverlay()                                         {}

// CandidateHandler receives points chosen by continuous-space strategies
type CandidateHandler interface {
	OnCandidate(kind domain.StrategyKind, c domain.Candidate)
}

// Deps are the collaborators every strategy is built with
type Deps struct {
	Source     clock.Source
	Exec       loop.Executor
	Bus        eventbus.EventBus
	Renderer   Renderer
	Candidates CandidateHandler
}

// WithDefaults fills unset collaborators with inert implementations
func (d Deps) WithDefaults() Deps {
	if d.Source == nil {
		d.Source = clock.RealSource{}
	}
	if d.Exec == nil {
		d.Exec = &loop.Inline{}
	}
	if d.Bus == nil {
		d.Bus = eventbus.Null{}
	}
	if d.Renderer == nil {
		d.Renderer = NopRenderer{}
	}
	return d
}

// Guard runs fn and turns a panic into an error, so one bad frame aborts
// the current cycle instead of the engine
func Guard(kind domain.StrategyKind, op string, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s %s: %v", kind, op, r)
			slog.Error("Scan step failed",
				slogs.Strategy, kind, slogs.Action, op, slogs.Error, r, slogs.Stack, string(debug.Stack()))
		}
	}()
	fn()
	return nil
}
