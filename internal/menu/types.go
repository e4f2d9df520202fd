// Package menu scans nested menus of actions, one item strategy per level.
package menu

import (
	"switchscan/internal/domain"
)

// Gesture is an action performed at a point
type Gesture string

const (
	GestureTap        Gesture = "tap"
	GestureLongPress  Gesture = "long_press"
	GestureSwipeUp    Gesture = "swipe_up"
	GestureSwipeDown  Gesture = "swipe_down"
	GestureSwipeLeft  Gesture = "swipe_left"
	GestureSwipeRight Gesture = "swipe_right"
)

// GestureDispatcher performs gestures on behalf of the user
type GestureDispatcher interface {
	Dispatch(g Gesture, p domain.Point)
}

// Host is told when the menu stack opens and closes
type Host interface {
	MenuOpened()
	MenuClosed()
}

// EntryKind tells what selecting an entry does
type EntryKind int

const (
	EntryGesture EntryKind = iota
	EntrySubmenu
	EntryBack
	EntryClose
)

// Entry height in menu coordinates. Larger than the row threshold so every
// entry becomes its own item.
const entryHeight = 48

const entryWidth = 240

// Menu is one level of the hierarchy
type Menu struct {
	Title   string
	Point   domain.Point
	Entries []*Entry
}

// Entry is a scannable menu line
type Entry struct {
	Label   string
	Kind    EntryKind
	Gesture Gesture
	Submenu *Menu

	rect        domain.Rect
	highlighted bool
	onSelect    func(*Entry)
}

func (e *Entry) Bounds() domain.Rect { return e.rect }
func (e *Entry) Highlight()          { e.highlighted = true }
func (e *Entry) Unhighlight()        { e.highlighted = false }

// Highlighted reports whether the scan currently covers the entry
func (e *Entry) Highlighted() bool { return e.highlighted }

func (e *Entry) Select() {
	if e.onSelect != nil {
		e.onSelect(e)
	}
}

func (e *Entry) String() string { return e.Label }

// layout places the entries in a single column
func (m *Menu) layout() []domain.ScanTarget {
	out := make([]domain.ScanTarget, len(m.Entries))
	for i, e := range m.Entries {
		e.rect = domain.Rect{Left: 0, Top: float64(i * entryHeight), Width: entryWidth, Height: entryHeight - 8}
		out[i] = e
	}
	return out
}

// PointActions is the menu offered for a point when auto-select is off
func PointActions(p domain.Point) *Menu {
	swipes := &Menu{
		Title: "Swipe",
		Point: p,
		Entries: []*Entry{
			{Label: "Swipe up", Kind: EntryGesture, Gesture: GestureSwipeUp},
			{Label: "Swipe down", Kind: EntryGesture, Gesture: GestureSwipeDown},
			{Label: "Swipe left", Kind: EntryGesture, Gesture: GestureSwipeLeft},
			{Label: "Swipe right", Kind: EntryGesture, Gesture: GestureSwipeRight},
			{Label: "Back", Kind: EntryBack},
		},
	}
	return &Menu{
		Title: "Actions",
		Point: p,
		Entries: []*Entry{
			{Label: "Tap", Kind: EntryGesture, Gesture: GestureTap},
			{Label: "Long press", Kind: EntryGesture, Gesture: GestureLongPress},
			{Label: "Swipe", Kind: EntrySubmenu, Submenu: swipes},
			{Label: "Cancel", Kind: EntryClose},
		},
	}
}
