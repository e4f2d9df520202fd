package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Key           lipgloss.Style
	KeyHighlight  lipgloss.Style
	Item          lipgloss.Style
	Group         lipgloss.Style
	Target        lipgloss.Style
	Escape        lipgloss.Style
	Quadrant      lipgloss.Style
	Line          lipgloss.Style
	Radar         lipgloss.Style
	MenuBox       lipgloss.Style
	MenuTitle     lipgloss.Style
	MenuEntry     lipgloss.Style
	MenuSelected  lipgloss.Style
	TextBox       lipgloss.Style
	HelpBox       lipgloss.Style
	StatusRunning lipgloss.Style
	StatusPaused  lipgloss.Style
	StatusIdle    lipgloss.Style
	StatusError   lipgloss.Style
	StatusCommit  lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Help:         lipgloss.NewStyle().Faint(true),
		Main:         lipgloss.NewStyle().Padding(1, 2),
		Key:          lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		KeyHighlight: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Item:         lipgloss.NewStyle().Background(lipgloss.Color("24")),
		Group:        lipgloss.NewStyle().Background(lipgloss.Color("30")),
		Target:       lipgloss.NewStyle().Background(lipgloss.Color("136")).Foreground(lipgloss.Color("16")),
		Escape:       lipgloss.NewStyle().Background(lipgloss.Color("124")),
		Quadrant:     lipgloss.NewStyle().Background(lipgloss.Color("236")),
		Line:         lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		Radar:        lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true),
		MenuBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1),
		MenuTitle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		MenuEntry:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuSelected: lipgloss.NewStyle().Background(lipgloss.Color("136")).Foreground(lipgloss.Color("16")),
		TextBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		HelpBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(1, 2),
		StatusRunning: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		StatusPaused:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusIdle:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusCommit:  lipgloss.NewStyle().Foreground(lipgloss.Color("51")),  // cyan
	}
}
