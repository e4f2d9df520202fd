package navigation

import "switchscan/internal/domain"

// State holds the navigator's cursor into the scan tree.
// When InsideItem is false, CurrentGroup and CurrentColumn are always 0.
type State struct {
	CurrentItem    int
	CurrentGroup   int
	CurrentColumn  int
	InsideItem     bool
	ScanningGroups bool
	Direction      domain.Direction
	ShouldEscape   bool
}

// Move is the outcome of a navigation step
type Move int

const (
	// Moved means the cursor changed position
	Moved Move = iota
	// Escape means the cursor reached the edge of the item; it did not move
	// and waits for ResolveEscape
	Escape
	// Empty means there is nothing to navigate
	Empty
)

func (m Move) String() string {
	switch m {
	case Moved:
		return "moved"
	case Escape:
		return "escape"
	default:
		return "empty"
	}
}

// EscapeDecision resolves a pending escape
type EscapeDecision int

const (
	// ConfirmEscape leaves the item towards the next or previous item
	ConfirmEscape EscapeDecision = iota
	// DenyEscape stays in the item and wraps to its far edge
	DenyEscape
)

// Focus describes what the cursor currently covers
type Focus struct {
	Level    domain.HighlightLevel
	Targets  []domain.ScanTarget
	Bounds   domain.Rect
	Escaping bool
}
