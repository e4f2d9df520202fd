package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StatusView is the engine summary shown under the keyboard
type StatusView struct {
	Strategy      string
	State         string
	Items         int
	Targets       int
	CommitPending bool
	LastAction    string
	LastError     string
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width       int
	Height      int
	Canvas      Canvas
	Status      StatusView
	Menu        *MenuView
	Text        string
	Lines       []string
	Gestures    []string
	ShowHelp    bool
	HelpContent string
	HelpLine    string
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	canvas      *CanvasRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		canvas:      NewCanvasRenderer(styles),
		popupRender: NewPopupRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	if state.ShowHelp {
		return r.popupRender.RenderPopupOverlay(state.HelpContent, state.Width, state.Height)
	}

	content := &strings.Builder{}
	content.WriteString(r.styles.Title.Render("switchscan"))
	content.WriteString("\n")

	board := r.canvas.Render(state.Canvas)
	if state.Menu != nil {
		board = lipgloss.JoinHorizontal(lipgloss.Top, board, "  ", r.popupRender.RenderMenu(*state.Menu))
	}
	content.WriteString(board)
	content.WriteString("\n")

	content.WriteString(r.renderText(state))
	content.WriteString("\n")
	content.WriteString(r.renderStatus(state.Status))

	if len(state.Gestures) > 0 {
		content.WriteString("\n")
		content.WriteString(r.styles.Dim.Render(strings.Join(state.Gestures, " · ")))
	}

	if state.HelpLine != "" {
		content.WriteString("\n")
		content.WriteString(r.styles.Help.Render(state.HelpLine))
	}

	return r.styles.Main.Render(content.String())
}

func (r *Renderer) renderText(state ViewState) string {
	lines := state.Lines
	if len(lines) > 3 {
		lines = lines[len(lines)-3:]
	}
	body := append(append([]string(nil), lines...), state.Text+"▏")
	width := max(state.Canvas.Cols-4, 10)
	return r.styles.TextBox.Width(width).Render(strings.Join(body, "\n"))
}

func (r *Renderer) renderStatus(s StatusView) string {
	state := s.State
	switch s.State {
	case "running":
		state = r.styles.StatusRunning.Render(state)
	case "paused":
		state = r.styles.StatusPaused.Render(state)
	default:
		state = r.styles.StatusIdle.Render(state)
	}

	parts := []string{
		fmt.Sprintf("%s %s", s.Strategy, state),
		fmt.Sprintf("%d items · %d targets", s.Items, s.Targets),
	}
	if s.CommitPending {
		parts = append(parts, r.styles.StatusCommit.Render("commit pending"))
	}
	if s.LastAction != "" {
		parts = append(parts, s.LastAction)
	}
	line := strings.Join(parts, " | ")
	if s.LastError != "" {
		line += "\n" + r.styles.StatusError.Render(s.LastError)
	}
	return r.styles.Status.Render(line)
}
