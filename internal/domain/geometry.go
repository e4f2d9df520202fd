package domain

import "math"

// Rect is a bounding box in screen pixels
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

func (r Rect) Right() float64  { return r.Left + r.Width }
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// MidX returns the horizontal mid-point
func (r Rect) MidX() float64 { return r.Left + r.Width/2 }

// MidY returns the vertical mid-point
func (r Rect) MidY() float64 { return r.Top + r.Height/2 }

// Center returns the mid-point of the rectangle
func (r Rect) Center() Point {
	return Point{X: r.MidX(), Y: r.MidY()}
}

// Empty reports whether the rectangle has no area
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Union returns the smallest rectangle containing both r and o.
// An empty rectangle is ignored.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	left := math.Min(r.Left, o.Left)
	top := math.Min(r.Top, o.Top)
	right := math.Max(r.Right(), o.Right())
	bottom := math.Max(r.Bottom(), o.Bottom())
	return Rect{Left: left, Top: top, Width: right - left, Height: bottom - top}
}

// BoundsOf returns the union of the bounds of all targets
func BoundsOf(targets []ScanTarget) Rect {
	var r Rect
	for _, t := range targets {
		r = r.Union(t.Bounds())
	}
	return r
}

// Point is a screen coordinate
type Point struct {
	X float64
	Y float64
}

// Size is the screen size in pixels
type Size struct {
	Width  int
	Height int
}

// Center returns the middle of the screen
func (s Size) Center() Point {
	return Point{X: float64(s.Width) / 2, Y: float64(s.Height) / 2}
}

// Valid reports whether both dimensions are positive
func (s Size) Valid() bool {
	return s.Width > 0 && s.Height > 0
}
