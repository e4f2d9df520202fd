package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"switchscan/internal/config"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	keys     keyMap
	switches []config.SwitchConfig
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(switches []config.SwitchConfig) *HelpRenderer {
	return &HelpRenderer{keys: newKeyMap(), switches: switches}
}

// RenderHelpContent generates help content with colors
func (r *HelpRenderer) RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder

	help.WriteString(titleStyle.Render("switchscan Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Switches"))
	help.WriteString("\n")
	for _, sw := range r.switches {
		desc := sw.Press
		if len(sw.Hold) > 0 {
			desc += ", hold: " + strings.Join(sw.Hold, " → ")
		}
		help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-8s", sw.Code)), descStyle.Render(fmt.Sprintf("%s (%s)", sw.Name, desc))))
	}
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Host"))
	help.WriteString("\n")
	for _, group := range r.keys.FullHelp() {
		for _, b := range group {
			h := b.Help()
			help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-8s", h.Key)), descStyle.Render(h.Desc)))
		}
	}
	help.WriteString("\n")

	help.WriteString(lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).Render(
		"  Terminals report no key releases: a switch key is released shortly after it is pressed."))

	return help.String()
}
