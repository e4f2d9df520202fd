package views

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyFace(t *testing.T) {
	assert.Equal(t, "[ q ]", keyFace("q", 5))
	assert.Equal(t, "[    space    ]", keyFace("space", 15))
	assert.Equal(t, "space", keyFace("space", 4))
}

func TestCanvasDrawsKeysAndMarks(t *testing.T) {
	cr := NewCanvasRenderer(NewStyles())
	out := cr.Render(Canvas{
		Cols: 10,
		Rows: 3,
		Keys: []KeyView{{Label: "a", Row: 0, Col: 0, Cells: 5}, {Label: "b", Row: 2, Col: 5, Cells: 5}},
		Marks: []Mark{
			{X: 4, Y: 1, Rune: '│', Ink: InkLine},
			{X: 40, Y: 1, Rune: '│', Ink: InkLine},
		},
		Areas: []Area{{Left: -2, Top: 0, Right: 99, Bottom: 1, Shade: ShadeItem}},
	})

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "[ a ]")
	assert.Contains(t, lines[1], "│")
	assert.Contains(t, lines[2], "[ b ]")
}

func TestEmptyCanvas(t *testing.T) {
	assert.Empty(t, NewCanvasRenderer(NewStyles()).Render(Canvas{}))
}
