package ui

import (
	"math"

	"switchscan/internal/coordinator"
	"switchscan/internal/domain"
	"switchscan/internal/scan/strategy"
	"switchscan/internal/ui/views"
)

// ViewModel turns the keyboard, the overlay and the engine status into
// view-ready data
type ViewModel struct {
	kb       *Keyboard
	overlay  *Overlay
	gestures *Gestures
}

// NewViewModel creates a new view model
func NewViewModel(kb *Keyboard, overlay *Overlay, gestures *Gestures) *ViewModel {
	return &ViewModel{kb: kb, overlay: overlay, gestures: gestures}
}

// BuildCanvas converts the overlay from scan pixels into cells
func (vm *ViewModel) BuildCanvas() views.Canvas {
	cols, rows := vm.kb.Cells()
	c := views.Canvas{Cols: cols, Rows: rows}
	for _, k := range vm.kb.Keys() {
		c.Keys = append(c.Keys, views.KeyView{
			Label:       k.Label,
			Row:         k.Row * RowPitch,
			Col:         k.Col,
			Cells:       k.Cells,
			Highlighted: k.Highlighted(),
		})
	}

	o := vm.overlay.State()
	switch o.Kind {
	case OverlayHighlight:
		shade := views.ShadeTarget
		switch {
		case o.Escaping:
			shade = views.ShadeEscape
		case o.Level == domain.HighlightItem:
			shade = views.ShadeItem
		case o.Level == domain.HighlightGroup:
			shade = views.ShadeGroup
		}
		c.Areas = append(c.Areas, rectToArea(o.Bounds, shade))

	case OverlayQuadrant:
		a := views.Area{Left: 0, Top: 0, Right: cols, Bottom: rows, Shade: views.ShadeQuadrant}
		if o.Axis == strategy.AxisX {
			a.Left, a.Right = o.Start/CellWidth, ceilDiv(o.End, CellWidth)
		} else {
			a.Top, a.Bottom = o.Start/CellHeight, ceilDiv(o.End, CellHeight)
		}
		c.Areas = append(c.Areas, a)

	case OverlayLine:
		if o.Axis == strategy.AxisX {
			x := o.Pos / CellWidth
			for y := 0; y < rows; y++ {
				c.Marks = append(c.Marks, views.Mark{X: x, Y: y, Rune: '│', Ink: views.InkLine})
			}
		} else {
			y := o.Pos / CellHeight
			for x := 0; x < cols; x++ {
				c.Marks = append(c.Marks, views.Mark{X: x, Y: y, Rune: '─', Ink: views.InkLine})
			}
		}

	case OverlayRadarLine:
		c.Marks = append(c.Marks, radarRay(o.Center, o.Angle, vm.kb.Size())...)

	case OverlayRadarPoint:
		c.Marks = append(c.Marks, views.Mark{
			X:    int(o.Point.X) / CellWidth,
			Y:    int(o.Point.Y) / CellHeight,
			Rune: '◉',
			Ink:  views.InkRadar,
		})
	}
	return c
}

// BuildState assembles everything the renderer needs
func (vm *ViewModel) BuildState(status coordinator.Status) views.ViewState {
	text, lines := vm.kb.Text()
	state := views.ViewState{
		Canvas: vm.BuildCanvas(),
		Status: views.StatusView{
			Strategy:      string(status.Strategy),
			State:         string(status.State),
			Items:         status.Items,
			Targets:       status.Targets,
			CommitPending: status.CommitPending,
		},
		Text:  text,
		Lines: lines,
	}
	if vm.gestures != nil {
		state.Gestures = vm.gestures.History()
	}
	if status.Menu != nil {
		state.Menu = &views.MenuView{
			Title:       status.Menu.Title,
			Entries:     status.Menu.Entries,
			Highlighted: status.Menu.Highlighted,
			Depth:       status.Menu.Depth,
		}
	}
	return state
}

func rectToArea(r domain.Rect, shade views.Shade) views.Area {
	return views.Area{
		Left:   int(math.Floor(r.Left / CellWidth)),
		Top:    int(math.Floor(r.Top / CellHeight)),
		Right:  int(math.Ceil(r.Right() / CellWidth)),
		Bottom: int(math.Ceil(r.Bottom() / CellHeight)),
		Shade:  shade,
	}
}

// radarRay samples the ray from center at half-cell steps. Angles grow
// clockwise from +X because screen y points down.
func radarRay(center domain.Point, angleDeg float64, screen domain.Size) []views.Mark {
	rad := angleDeg * math.Pi / 180
	dx, dy := math.Cos(rad), math.Sin(rad)
	reach := math.Hypot(float64(screen.Width), float64(screen.Height))

	var marks []views.Mark
	seen := make(map[[2]int]bool)
	for t := 0.0; t <= reach; t += CellWidth / 2 {
		x, y := center.X+dx*t, center.Y+dy*t
		if x < 0 || y < 0 || x >= float64(screen.Width) || y >= float64(screen.Height) {
			break
		}
		cx, cy := int(x)/CellWidth, int(y)/CellHeight
		if seen[[2]int{cx, cy}] {
			continue
		}
		seen[[2]int{cx, cy}] = true
		marks = append(marks, views.Mark{X: cx, Y: cy, Rune: '•', Ink: views.InkRadar})
	}
	return marks
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
