package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderShowsMenuAndStatus(t *testing.T) {
	r := NewRenderer()
	out := r.Render(ViewState{
		Width:  120,
		Height: 40,
		Canvas: Canvas{Cols: 10, Rows: 1, Keys: []KeyView{{Label: "a", Cells: 5}}},
		Status: StatusView{Strategy: "item", State: "running", Items: 3, Targets: 7, CommitPending: true},
		Menu:   &MenuView{Title: "Actions", Entries: []string{"Tap", "Cancel"}, Highlighted: 1, Depth: 1},
		Text:   "hello",
	})

	assert.Contains(t, out, "Actions")
	assert.Contains(t, out, "▸ Cancel")
	assert.Contains(t, out, "item running")
	assert.Contains(t, out, "3 items · 7 targets")
	assert.Contains(t, out, "commit pending")
	assert.Contains(t, out, "hello")
}

func TestRenderHelpReplacesContent(t *testing.T) {
	r := NewRenderer()
	out := r.Render(ViewState{Width: 60, Height: 20, ShowHelp: true, HelpContent: "help body"})

	assert.Contains(t, out, "help body")
	assert.NotContains(t, out, "switchscan\n")
}

func TestSubmenuDepthInTitle(t *testing.T) {
	pr := NewPopupRenderer(NewStyles())
	out := pr.RenderMenu(MenuView{Title: "Swipe", Entries: []string{"Back"}, Highlighted: -1, Depth: 2})
	assert.Contains(t, out, "Swipe (2)")
	assert.NotContains(t, out, "▸")
}
