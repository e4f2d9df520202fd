package grouping

import "switchscan/internal/domain"

// OversizeRatio is the share of a screen dimension above which a target is
// treated as a background container and left out of the tree
const OversizeRatio = 0.8

// Options controls how targets are grouped
type Options struct {
	ItemThreshold float64     // dp
	Density       float64     // px per dp
	Screen        domain.Size // zero disables the oversize filter
	RowColumn     bool
	GroupSize     int
}

// Group is an ordered run of targets inside an item
type Group []domain.ScanTarget

// Item is a row of spatially close targets
type Item struct {
	Groups   []Group
	Y        float64 // top of the highest target
	Baseline float64 // vertical mid-point the row was seeded with
}

// Targets returns every target of the item in scan order
func (it Item) Targets() []domain.ScanTarget {
	var out []domain.ScanTarget
	for _, g := range it.Groups {
		out = append(out, g...)
	}
	return out
}

// Columns returns the total number of targets across all groups
func (it Item) Columns() int {
	n := 0
	for _, g := range it.Groups {
		n += len(g)
	}
	return n
}

// Bounds returns the union of the item's target bounds
func (it Item) Bounds() domain.Rect {
	return domain.BoundsOf(it.Targets())
}

// ExclusionReason says why a target is not part of the tree
type ExclusionReason string

const (
	ExcludedOversized ExclusionReason = "oversized"
	ExcludedZeroSize  ExclusionReason = "zero_size"
)

// Exclusion records a target left out of the tree
type Exclusion struct {
	Target domain.ScanTarget
	Reason ExclusionReason
}

// Tree is the ordered result of BuildTree
type Tree struct {
	Items    []Item
	Excluded []Exclusion
}

// Flatten returns every target in the tree in scan order
func (t Tree) Flatten() []domain.ScanTarget {
	var out []domain.ScanTarget
	for _, it := range t.Items {
		out = append(out, it.Targets()...)
	}
	return out
}

// TargetCount returns the number of targets that made it into the tree
func (t Tree) TargetCount() int {
	n := 0
	for _, it := range t.Items {
		n += it.Columns()
	}
	return n
}
