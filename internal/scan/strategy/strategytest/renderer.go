// Package strategytest provides recording collaborators for strategy tests.
package strategytest

import (
	"fmt"

	"switchscan/internal/domain"
	"switchscan/internal/scan/strategy"
)

// Renderer records every draw call as a short string
type Renderer struct {
	Calls     []string
	Highlight domain.Rect
	Escaping  bool
}

func (r *Renderer) ShowHighlight(level domain.HighlightLevel, bounds domain.Rect, escaping bool) {
	r.Highlight = bounds
	r.Escaping = escaping
	r.Calls = append(r.Calls, fmt.Sprintf("highlight %s", level))
}

func (r *Renderer) ShowQuadrant(axis strategy.Axis, start, end int) {
	r.Calls = append(r.Calls, fmt.Sprintf("quadrant %s %d-%d", axis, start, end))
}

func (r *Renderer) ShowLine(axis strategy.Axis, pos int) {
	r.Calls = append(r.Calls, fmt.Sprintf("line %s %d", axis, pos))
}

func (r *Renderer) ShowRadarLine(center domain.Point, angleDeg float64) {
	r.Calls = append(r.Calls, fmt.Sprintf("radar %.0f", angleDeg))
}

func (r *Renderer) ShowRadarPoint(p domain.Point) {
	r.Calls = append(r.Calls, fmt.Sprintf("point %.0f,%.0f", p.X, p.Y))
}

func (r *Renderer) ClearOverlay() {
	r.Calls = append(r.Calls, "clear")
}

// Last returns the most recent call, or "" when nothing was drawn
func (r *Renderer) Last() string {
	if len(r.Calls) == 0 {
		return ""
	}
	return r.Calls[len(r.Calls)-1]
}

// Candidates records chosen candidates
type Candidates struct {
	Kinds  []domain.StrategyKind
	Chosen []domain.Candidate
}

func (c *Candidates) OnCandidate(kind domain.StrategyKind, cand domain.Candidate) {
	c.Kinds = append(c.Kinds, kind)
	c.Chosen = append(c.Chosen, cand)
}
