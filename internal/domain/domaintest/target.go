// Package domaintest provides recording ScanTarget fakes.
package domaintest

import (
	"fmt"

	"switchscan/internal/domain"
)

// Target records every call made on it
type Target struct {
	Name        string
	Rect        domain.Rect
	Highlighted bool
	Highlights  int
	Selections  int
	OnSelect    func()
}

// NewTarget creates a target with the given bounds
func NewTarget(name string, left, top, width, height float64) *Target {
	return &Target{Name: name, Rect: domain.Rect{Left: left, Top: top, Width: width, Height: height}}
}

func (t *Target) Bounds() domain.Rect { return t.Rect }

func (t *Target) Highlight() {
	t.Highlighted = true
	t.Highlights++
}

func (t *Target) Unhighlight() { t.Highlighted = false }

func (t *Target) Select() {
	t.Selections++
	if t.OnSelect != nil {
		t.OnSelect()
	}
}

func (t *Target) String() string { return t.Name }

// Row creates n targets of the given size laid out left to right at y
func Row(prefix string, n int, y, width, height float64) []*Target {
	out := make([]*Target, n)
	for i := range out {
		out[i] = NewTarget(fmt.Sprintf("%s%d", prefix, i), float64(i)*width, y, width, height)
	}
	return out
}

// AsTargets converts fakes to the interface slice
func AsTargets(ts ...*Target) []domain.ScanTarget {
	out := make([]domain.ScanTarget, len(ts))
	for i, t := range ts {
		out[i] = t
	}
	return out
}

// Names returns the names of the given targets, in order
func Names(ts []domain.ScanTarget) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = fmt.Sprint(t)
	}
	return out
}
