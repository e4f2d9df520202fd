// Package ui is a terminal host for the scan engine: a virtual keyboard whose
// keys are the scan targets, with the keyboard's keys acting as switches.
package ui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"switchscan/internal/config"
	"switchscan/internal/coordinator"
	"switchscan/internal/domain"
	"switchscan/internal/ui/views"
)

const refreshInterval = 100 * time.Millisecond

// tapDuration is how long a key press holds its switch down. Terminals only
// report presses, so every release is synthesized.
const tapDuration = 80 * time.Millisecond

// Engine is the part of the scan engine the host drives
type Engine interface {
	OnPress(code string) bool
	OnRelease(code string) bool
	Start()
	Stop()
	SetStrategy(kind domain.StrategyKind)
	ActiveKind() domain.StrategyKind
	Snapshot() coordinator.Status
}

// Options configure the host
type Options struct {
	HoldTime time.Duration
	Switches []config.SwitchConfig
}

// OptionsFromConfig reads host options from the config
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{HoldTime: cfg.Switch.HoldTime(), Switches: cfg.Switches}
}

// Model represents the UI state
type Model struct {
	engine   Engine
	kb       *Keyboard
	overlay  *Overlay
	gestures *Gestures
	opts     Options

	width       int
	height      int
	help        help.Model
	keys        keyMap
	showHelp    bool
	inPagerMode bool
	lastAction  string
	lastError   string
	pressGen    map[string]int

	viewModel    *ViewModel
	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	pager        *PagerOps

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(engine Engine, kb *Keyboard, overlay *Overlay, gestures *Gestures, opts Options) *Model {
	return &Model{
		engine:       engine,
		kb:           kb,
		overlay:      overlay,
		gestures:     gestures,
		opts:         opts,
		help:         help.New(),
		keys:         newKeyMap(),
		pressGen:     make(map[string]int),
		viewModel:    NewViewModel(kb, overlay, gestures),
		renderer:     views.NewRenderer(),
		helpRenderer: NewHelpRenderer(opts.Switches),
		pager:        NewPagerOps(),
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case releaseMsg:
		if m.pressGen[msg.code] == msg.gen {
			m.engine.OnRelease(msg.code)
		}

	case EventMsg:
		m.handleEvent(msg.Event)

	case RedrawMsg:
		// overlay changed, View reads it

	case tickMsg:
		// Don't continue tick loop if we're in pager mode
		if m.inPagerMode {
			return m, nil
		}
		return m, tick()

	case helpPagerMsg:
		m.inPagerMode = false
		if msg.err != nil {
			slog.Error("Help pager failed", "error", msg.err)
			m.lastError = fmt.Sprintf("pager: %v", msg.err)
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}

	if m.showHelp {
		switch msg.String() {
		case "esc", "?", "q":
			m.showHelp = false
		}
		return nil
	}

	// Switch codes take precedence over host commands
	code := switchCode(msg)
	if m.engine.OnPress(code) {
		return m.releaseAfter(code, tapDuration)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Pager):
		return m.fetchHelpPager()
	case key.Matches(msg, m.keys.Method):
		m.engine.SetStrategy(m.engine.ActiveKind().Next())
	case key.Matches(msg, m.keys.Start):
		m.engine.Start()
	case key.Matches(msg, m.keys.Stop):
		m.engine.Stop()
	case key.Matches(msg, m.keys.Hold):
		return m.holdFirstSwitch()
	}
	return nil
}

// holdFirstSwitch keeps the first switch down for one hold period
func (m *Model) holdFirstSwitch() tea.Cmd {
	if len(m.opts.Switches) == 0 {
		return nil
	}
	code := m.opts.Switches[0].Code
	if !m.engine.OnPress(code) {
		return nil
	}
	return m.releaseAfter(code, m.opts.HoldTime+tapDuration)
}

// releaseAfter schedules the release of code. A newer press of the same code
// supersedes it, so terminal autorepeat keeps the switch down.
func (m *Model) releaseAfter(code string, d time.Duration) tea.Cmd {
	m.pressGen[code]++
	gen := m.pressGen[code]
	return tea.Tick(d, func(time.Time) tea.Msg {
		return releaseMsg{code: code, gen: gen}
	})
}

func (m *Model) handleEvent(event domain.DomainEvent) {
	switch e := event.(type) {
	case domain.ActionFiredEvent:
		m.lastAction = e.Action
		if e.Hold {
			m.lastAction += " (hold)"
		}
	case domain.ErrorEvent:
		m.lastError = e.Message
	case domain.StrategyChangedEvent:
		m.lastError = ""
	case domain.CommittedEvent:
		m.lastAction = "committed"
	}
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager() tea.Cmd {
	m.inPagerMode = true
	content := m.helpRenderer.RenderHelpContent()
	return func() tea.Msg {
		return helpPagerMsg{err: m.pager.ShowHelpInPager(content)}
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	state := m.viewModel.BuildState(m.engine.Snapshot())
	state.Width = m.width
	state.Height = m.height
	state.ShowHelp = m.showHelp
	state.Status.LastAction = m.lastAction
	state.Status.LastError = m.lastError
	if m.showHelp {
		state.HelpContent = m.helpRenderer.RenderHelpContent()
	} else {
		state.HelpLine = m.help.View(m.keys)
	}
	return m.renderer.Render(state)
}
