package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Shade is the background of a cell
type Shade int

const (
	ShadeNone Shade = iota
	ShadeQuadrant
	ShadeItem
	ShadeGroup
	ShadeTarget
	ShadeEscape
)

// Ink is the foreground of a cell
type Ink int

const (
	InkNone Ink = iota
	InkKey
	InkKeyHighlight
	InkLine
	InkRadar
)

// KeyView is one key of the keyboard, in cells
type KeyView struct {
	Label       string
	Row         int
	Col         int
	Cells       int
	Highlighted bool
}

// Area is a shaded rectangle in cells, right and bottom exclusive
type Area struct {
	Left, Top, Right, Bottom int
	Shade                    Shade
}

// Mark is a single drawn cell
type Mark struct {
	X, Y int
	Rune rune
	Ink  Ink
}

// Canvas is the keyboard and the scan overlay on top of it
type Canvas struct {
	Cols  int
	Rows  int
	Keys  []KeyView
	Areas []Area
	Marks []Mark
}

type cell struct {
	r     rune
	shade Shade
	ink   Ink
}

// CanvasRenderer draws a Canvas into terminal lines
type CanvasRenderer struct {
	styles *Styles
}

// NewCanvasRenderer creates a new canvas renderer
func NewCanvasRenderer(styles *Styles) *CanvasRenderer {
	return &CanvasRenderer{styles: styles}
}

// Render paints areas, then keys, then marks
func (cr *CanvasRenderer) Render(c Canvas) string {
	if c.Cols <= 0 || c.Rows <= 0 {
		return ""
	}
	grid := make([][]cell, c.Rows)
	for y := range grid {
		grid[y] = make([]cell, c.Cols)
		for x := range grid[y] {
			grid[y][x].r = ' '
		}
	}
	inside := func(x, y int) bool { return x >= 0 && y >= 0 && x < c.Cols && y < c.Rows }

	for _, a := range c.Areas {
		for y := max(a.Top, 0); y < min(a.Bottom, c.Rows); y++ {
			for x := max(a.Left, 0); x < min(a.Right, c.Cols); x++ {
				grid[y][x].shade = a.Shade
			}
		}
	}

	for _, k := range c.Keys {
		ink := InkKey
		if k.Highlighted {
			ink = InkKeyHighlight
		}
		for i, r := range []rune(keyFace(k.Label, k.Cells)) {
			if inside(k.Col+i, k.Row) {
				grid[k.Row][k.Col+i].r = r
				grid[k.Row][k.Col+i].ink = ink
			}
		}
	}

	for _, m := range c.Marks {
		if inside(m.X, m.Y) {
			grid[m.Y][m.X].r = m.Rune
			grid[m.Y][m.X].ink = m.Ink
		}
	}

	lines := make([]string, c.Rows)
	for y, row := range grid {
		lines[y] = cr.renderRow(row)
	}
	return strings.Join(lines, "\n")
}

// renderRow styles runs of equal cells together
func (cr *CanvasRenderer) renderRow(row []cell) string {
	var b strings.Builder
	start := 0
	for x := 1; x <= len(row); x++ {
		if x < len(row) && row[x].shade == row[start].shade && row[x].ink == row[start].ink {
			continue
		}
		var run strings.Builder
		for _, c := range row[start:x] {
			run.WriteRune(c.r)
		}
		b.WriteString(cr.style(row[start].shade, row[start].ink).Render(run.String()))
		start = x
	}
	return b.String()
}

func (cr *CanvasRenderer) style(shade Shade, ink Ink) lipgloss.Style {
	s := lipgloss.NewStyle()
	switch ink {
	case InkKey:
		s = cr.styles.Key
	case InkKeyHighlight:
		s = cr.styles.KeyHighlight
	case InkLine:
		s = cr.styles.Line
	case InkRadar:
		s = cr.styles.Radar
	}
	switch shade {
	case ShadeQuadrant:
		s = s.Inherit(cr.styles.Quadrant)
	case ShadeItem:
		s = s.Inherit(cr.styles.Item)
	case ShadeGroup:
		s = s.Inherit(cr.styles.Group)
	case ShadeTarget:
		s = s.Inherit(cr.styles.Target)
	case ShadeEscape:
		s = s.Inherit(cr.styles.Escape)
	}
	return s
}

// keyFace centers a label between brackets in width cells
func keyFace(label string, width int) string {
	inner := width - 2
	if inner < len([]rune(label)) {
		return label
	}
	pad := inner - len([]rune(label))
	left := pad / 2
	return "[" + strings.Repeat(" ", left) + label + strings.Repeat(" ", pad-left) + "]"
}
