// Package cursor locks an X then a Y coordinate with sweeping quadrants and lines.
package cursor

import (
	"time"

	"switchscan/internal/scan/strategy"
)

// Quadrants is the number of slices each axis is split into in block mode
const Quadrants = 4

// Phase of the cursor sweep
type Phase int

const (
	XQuadrant Phase = iota
	XLine
	YQuadrant
	YLine
)

func (p Phase) String() string {
	switch p {
	case XQuadrant:
		return "x_quadrant"
	case XLine:
		return "x_line"
	case YQuadrant:
		return "y_quadrant"
	default:
		return "y_line"
	}
}

// Axis returns the axis the phase sweeps
func (p Phase) Axis() strategy.Axis {
	if p == YQuadrant || p == YLine {
		return strategy.AxisY
	}
	return strategy.AxisX
}

// IsLine reports whether the phase moves a fine line
func (p Phase) IsLine() bool {
	return p == XLine || p == YLine
}

// QuadrantInfo is a half-open slice [Start, End) of an axis
type QuadrantInfo struct {
	Index int
	Start int
	End   int
}

// Contains reports whether pos lies inside the slice
func (q QuadrantInfo) Contains(pos int) bool {
	return pos >= q.Start && pos < q.End
}

// Options configures the cursor strategy
type Options struct {
	Manual       bool
	Rate         time.Duration
	InitialDelay time.Duration
	FineRate     time.Duration
	Block        bool
	LineStep     int
}
