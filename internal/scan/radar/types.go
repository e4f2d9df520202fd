// Package radar picks a point by rotating a line around the screen centre
// and then moving a point along it.
package radar

import (
	"math"
	"time"

	"switchscan/internal/domain"
)

// Phase of the radar sweep
type Phase int

const (
	Rotate Phase = iota
	Radial
)

func (p Phase) String() string {
	if p == Radial {
		return "radial"
	}
	return "rotate"
}

// Options configures the radar strategy
type Options struct {
	Manual       bool
	Rate         time.Duration
	InitialDelay time.Duration
	FineRate     time.Duration
	AngleStep    float64 // degrees
	RadiusStep   float64 // px
}

// MaxRadius is the distance from the centre of screen to its edge along angleDeg
func MaxRadius(screen domain.Size, angleDeg float64) float64 {
	c := screen.Center()
	rad := angleDeg * math.Pi / 180
	dx, dy := math.Cos(rad), math.Sin(rad)

	const eps = 1e-9
	limit := math.Inf(1)
	if dx > eps {
		limit = math.Min(limit, (float64(screen.Width)-c.X)/dx)
	} else if dx < -eps {
		limit = math.Min(limit, -c.X/dx)
	}
	if dy > eps {
		limit = math.Min(limit, (float64(screen.Height)-c.Y)/dy)
	} else if dy < -eps {
		limit = math.Min(limit, -c.Y/dy)
	}
	if math.IsInf(limit, 1) {
		return 0
	}
	return limit
}

// PointAt returns centre + r·(cos θ, sin θ), clamped to the screen
func PointAt(screen domain.Size, angleDeg, radius float64) domain.Point {
	c := screen.Center()
	rad := angleDeg * math.Pi / 180
	x := c.X + radius*math.Cos(rad)
	y := c.Y + radius*math.Sin(rad)
	return domain.Point{
		X: math.Max(0, math.Min(float64(screen.Width), x)),
		Y: math.Max(0, math.Min(float64(screen.Height), y)),
	}
}
