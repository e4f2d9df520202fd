package ui

import (
	"sync"

	"switchscan/internal/domain"
	"switchscan/internal/scan/strategy"
)

// OverlayKind is what the overlay currently shows
type OverlayKind int

const (
	OverlayNone OverlayKind = iota
	OverlayHighlight
	OverlayQuadrant
	OverlayLine
	OverlayRadarLine
	OverlayRadarPoint
)

// OverlayState is a copy of the overlay, in scan pixels
type OverlayState struct {
	Kind     OverlayKind
	Level    domain.HighlightLevel
	Bounds   domain.Rect
	Escaping bool
	Axis     strategy.Axis
	Start    int
	End      int
	Pos      int
	Center   domain.Point
	Angle    float64
	Point    domain.Point
}

// Overlay records the draw calls of the engine for the view. It is written
// from the engine's executor and read from the UI goroutine.
type Overlay struct {
	mu      sync.Mutex
	state   OverlayState
	changes chan struct{}
}

var _ strategy.Renderer = (*Overlay)(nil)

// NewOverlay creates an empty overlay
func NewOverlay() *Overlay {
	return &Overlay{changes: make(chan struct{}, 1)}
}

// Changes delivers a signal after every draw call; signals coalesce
func (o *Overlay) Changes() <-chan struct{} { return o.changes }

// State returns the current overlay
func (o *Overlay) State() OverlayState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Overlay) ShowHighlight(level domain.HighlightLevel, bounds domain.Rect, escaping bool) {
	o.set(OverlayState{Kind: OverlayHighlight, Level: level, Bounds: bounds, Escaping: escaping})
}

func (o *Overlay) ShowQuadrant(axis strategy.Axis, start, end int) {
	o.set(OverlayState{Kind: OverlayQuadrant, Axis: axis, Start: start, End: end})
}

func (o *Overlay) ShowLine(axis strategy.Axis, pos int) {
	o.set(OverlayState{Kind: OverlayLine, Axis: axis, Pos: pos})
}

func (o *Overlay) ShowRadarLine(center domain.Point, angleDeg float64) {
	o.set(OverlayState{Kind: OverlayRadarLine, Center: center, Angle: angleDeg})
}

func (o *Overlay) ShowRadarPoint(p domain.Point) {
	o.set(OverlayState{Kind: OverlayRadarPoint, Point: p})
}

func (o *Overlay) ClearOverlay() {
	o.set(OverlayState{})
}

func (o *Overlay) set(s OverlayState) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
	o.notify()
}

func (o *Overlay) notify() {
	select {
	case o.changes <- struct{}{}:
	default:
	}
}
