package grouping

import (
	"math"
	"sort"

	"switchscan/internal/domain"
)

// BuildTree partitions targets into rows ordered top to bottom, each row
// ordered left to right. Targets that cannot be scanned are reported in
// Tree.Excluded rather than dropped.
func BuildTree(targets []domain.ScanTarget, opts Options) Tree {
	var tree Tree
	if len(targets) == 0 {
		return tree
	}

	sorted := make([]domain.ScanTarget, len(targets))
	copy(sorted, targets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Bounds().MidY() < sorted[j].Bounds().MidY()
	})

	threshold := opts.ItemThreshold * density(opts)

	var current []domain.ScanTarget
	var baseline float64
	for _, t := range sorted {
		if reason, ok := exclude(t.Bounds(), opts.Screen); ok {
			tree.Excluded = append(tree.Excluded, Exclusion{Target: t, Reason: reason})
			continue
		}

		midY := t.Bounds().MidY()
		if current != nil && math.Abs(midY-baseline) <= threshold {
			current = append(current, t)
			continue
		}

		if current != nil {
			tree.Items = append(tree.Items, closeItem(current, baseline, opts))
		}
		current = []domain.ScanTarget{t}
		baseline = midY
	}
	if current != nil {
		tree.Items = append(tree.Items, closeItem(current, baseline, opts))
	}

	return tree
}

func density(opts Options) float64 {
	if opts.Density <= 0 {
		return 1
	}
	return opts.Density
}

func exclude(r domain.Rect, screen domain.Size) (ExclusionReason, bool) {
	if r.Empty() {
		return ExcludedZeroSize, true
	}
	if !screen.Valid() {
		return "", false
	}
	if r.Width > OversizeRatio*float64(screen.Width) || r.Height > OversizeRatio*float64(screen.Height) {
		return ExcludedOversized, true
	}
	return "", false
}

func closeItem(targets []domain.ScanTarget, baseline float64, opts Options) Item {
	sort.SliceStable(targets, func(i, j int) bool {
		a, b := targets[i].Bounds(), targets[j].Bounds()
		if a.Left != b.Left {
			return a.Left < b.Left
		}
		return a.MidX() < b.MidX()
	})

	item := Item{Baseline: baseline, Y: math.Inf(1)}
	for _, t := range targets {
		item.Y = math.Min(item.Y, t.Bounds().Top)
	}

	if !opts.RowColumn || opts.GroupSize <= 0 || len(targets) <= opts.GroupSize {
		item.Groups = []Group{Group(targets)}
		return item
	}

	for start := 0; start < len(targets); start += opts.GroupSize {
		end := start + opts.GroupSize
		if end > len(targets) {
			end = len(targets)
		}
		item.Groups = append(item.Groups, Group(targets[start:end:end]))
	}
	return item
}
