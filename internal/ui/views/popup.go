package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// MenuView is the open action menu
type MenuView struct {
	Title       string
	Entries     []string
	Highlighted int // -1 when no entry is highlighted
	Depth       int
}

// PopupRenderer handles menu and help boxes
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderMenu renders the menu box with the highlighted entry marked
func (pr *PopupRenderer) RenderMenu(m MenuView) string {
	var b strings.Builder
	title := m.Title
	if m.Depth > 1 {
		title = fmt.Sprintf("%s (%d)", title, m.Depth)
	}
	b.WriteString(pr.styles.MenuTitle.Render(title))
	for i, entry := range m.Entries {
		b.WriteString("\n")
		if i == m.Highlighted {
			b.WriteString(pr.styles.MenuSelected.Render("▸ " + entry))
		} else {
			b.WriteString(pr.styles.MenuEntry.Render("  " + entry))
		}
	}
	return pr.styles.MenuBox.Render(b.String())
}

// RenderPopupOverlay places a popup in the middle of the screen, replacing the
// main content
func (pr *PopupRenderer) RenderPopupOverlay(popupContent string, width, height int) string {
	styled := pr.styles.HelpBox.Render(popupContent)
	if width <= 0 || height <= 0 {
		return styled
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, styled)
}
