package ui

import (
	"strings"
	"sync"
	"sync/atomic"

	"switchscan/internal/domain"
)

// Layout of the virtual keyboard in terminal cells. One cell is CellWidth by
// CellHeight scan pixels; rows are RowPitch cells apart so each one becomes
// its own scan item.
const (
	CellWidth  = 10
	CellHeight = 20
	KeyCells   = 5
	RowPitch   = 3
)

var defaultRows = [][]string{
	{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0"},
	{"q", "w", "e", "r", "t", "y", "u", "i", "o", "p"},
	{"a", "s", "d", "f", "g", "h", "j", "k", "l"},
	{"z", "x", "c", "v", "b", "n", "m", ",", "."},
	{"space", "del", "enter"},
}

// Key is one scannable key. Highlight state is written by the engine and
// read by the view.
type Key struct {
	Label string
	Row   int
	Col   int // first cell
	Cells int

	kb          *Keyboard
	highlighted atomic.Bool
}

func (k *Key) Bounds() domain.Rect {
	return domain.Rect{
		Left:   float64(k.Col * CellWidth),
		Top:    float64(k.Row * RowPitch * CellHeight),
		Width:  float64(k.Cells * CellWidth),
		Height: CellHeight,
	}
}

func (k *Key) Highlight()   { k.highlighted.Store(true) }
func (k *Key) Unhighlight() { k.highlighted.Store(false) }

// Highlighted reports whether the scan covers the key
func (k *Key) Highlighted() bool { return k.highlighted.Load() }

// Select types the key
func (k *Key) Select() { k.kb.press(k) }

func (k *Key) String() string { return k.Label }

// Keyboard is the demo target set
type Keyboard struct {
	keys []*Key
	cols int
	rows int

	mu    sync.Mutex
	text  strings.Builder
	lines []string
}

// NewKeyboard lays out the default keys
func NewKeyboard() *Keyboard {
	return newKeyboard(defaultRows)
}

func newKeyboard(rows [][]string) *Keyboard {
	kb := &Keyboard{rows: len(rows)*RowPitch - (RowPitch - 1)}
	for r, labels := range rows {
		col := r % 2 // stagger alternate rows by one cell
		for _, label := range labels {
			cells := KeyCells
			if len(label) > 1 {
				cells = KeyCells * 3
			}
			kb.keys = append(kb.keys, &Key{Label: label, Row: r, Col: col, Cells: cells, kb: kb})
			col += cells
		}
		kb.cols = max(kb.cols, col)
	}
	return kb
}

// Keys returns every key in layout order
func (kb *Keyboard) Keys() []*Key { return kb.keys }

// Targets returns the keys as scan targets
func (kb *Keyboard) Targets() []domain.ScanTarget {
	out := make([]domain.ScanTarget, len(kb.keys))
	for i, k := range kb.keys {
		out[i] = k
	}
	return out
}

// Cells returns the keyboard size in terminal cells
func (kb *Keyboard) Cells() (cols, rows int) { return kb.cols, kb.rows }

// Size returns the keyboard size in scan pixels
func (kb *Keyboard) Size() domain.Size {
	return domain.Size{Width: kb.cols * CellWidth, Height: kb.rows * CellHeight}
}

// KeyAt returns the key under a point
func (kb *Keyboard) KeyAt(p domain.Point) (*Key, bool) {
	for _, k := range kb.keys {
		b := k.Bounds()
		if p.X >= b.Left && p.X < b.Right() && p.Y >= b.Top && p.Y < b.Bottom() {
			return k, true
		}
	}
	return nil, false
}

// Text returns the line being typed and the lines already entered
func (kb *Keyboard) Text() (string, []string) {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	return kb.text.String(), append([]string(nil), kb.lines...)
}

func (kb *Keyboard) press(k *Key) {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	switch k.Label {
	case "space":
		kb.text.WriteByte(' ')
	case "del":
		s := kb.text.String()
		if s != "" {
			kb.text.Reset()
			kb.text.WriteString(s[:len(s)-1])
		}
	case "enter":
		kb.lines = append(kb.lines, kb.text.String())
		kb.text.Reset()
	default:
		kb.text.WriteString(k.Label)
	}
}
