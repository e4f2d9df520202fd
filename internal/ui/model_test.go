package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"switchscan/internal/config"
	"switchscan/internal/coordinator"
	"switchscan/internal/domain"
)

type fakeEngine struct {
	switches map[string]bool
	pressed  []string
	released []string
	kind     domain.StrategyKind
	started  int
	stopped  int
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{switches: map[string]bool{"space": true, "enter": true}, kind: domain.StrategyItem}
}

func (f *fakeEngine) OnPress(code string) bool {
	if !f.switches[code] {
		return false
	}
	f.pressed = append(f.pressed, code)
	return true
}

func (f *fakeEngine) OnRelease(code string) bool {
	f.released = append(f.released, code)
	return f.switches[code]
}

func (f *fakeEngine) Start()                               { f.started++ }
func (f *fakeEngine) Stop()                                { f.stopped++ }
func (f *fakeEngine) SetStrategy(kind domain.StrategyKind) { f.kind = kind }
func (f *fakeEngine) ActiveKind() domain.StrategyKind      { return f.kind }
func (f *fakeEngine) Snapshot() coordinator.Status {
	return coordinator.Status{Strategy: f.kind, State: domain.ScanRunning}
}

func newTestModel(engine Engine) *Model {
	kb := NewKeyboard()
	opts := Options{HoldTime: 500 * time.Millisecond, Switches: config.DefaultSwitches()}
	return NewModel(engine, kb, NewOverlay(), NewGestures(kb, nil), opts)
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestSwitchKeyPressesAndReleases(t *testing.T) {
	engine := newFakeEngine()
	m := newTestModel(engine)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	require.NotNil(t, cmd)
	assert.Equal(t, []string{"space"}, engine.pressed)

	m.Update(releaseMsg{code: "space", gen: 1})
	assert.Equal(t, []string{"space"}, engine.released)
}

func TestRepeatedPressSupersedesRelease(t *testing.T) {
	engine := newFakeEngine()
	m := newTestModel(engine)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(releaseMsg{code: "enter", gen: 1})
	assert.Empty(t, engine.released)

	m.Update(releaseMsg{code: "enter", gen: 2})
	assert.Equal(t, []string{"enter"}, engine.released)
}

func TestHostCommands(t *testing.T) {
	engine := newFakeEngine()
	m := newTestModel(engine)

	m.Update(runeKey('m'))
	assert.Equal(t, domain.StrategyCursor, engine.kind)

	m.Update(runeKey('s'))
	m.Update(runeKey('x'))
	assert.Equal(t, 1, engine.started)
	assert.Equal(t, 1, engine.stopped)

	_, cmd := m.Update(runeKey('h'))
	require.NotNil(t, cmd)
	assert.Equal(t, []string{"space"}, engine.pressed)
}

func TestSwitchCodeWinsOverCommand(t *testing.T) {
	engine := newFakeEngine()
	engine.switches["m"] = true
	m := newTestModel(engine)

	m.Update(runeKey('m'))
	assert.Equal(t, domain.StrategyItem, engine.kind)
	assert.Equal(t, []string{"m"}, engine.pressed)
}

func TestHelpPopup(t *testing.T) {
	m := newTestModel(newFakeEngine())
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	m.Update(runeKey('?'))
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "switchscan Help")

	// keys go to the popup while it is open
	m.Update(runeKey('s'))
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.showHelp)
}

func TestEventsUpdateStatus(t *testing.T) {
	m := newTestModel(newFakeEngine())

	m.Update(EventMsg{Event: domain.ActionFiredEvent{Code: "space", Action: "change_method", Hold: true}})
	assert.Equal(t, "change_method (hold)", m.lastAction)

	m.Update(EventMsg{Event: domain.ErrorEvent{Message: "scan aborted"}})
	assert.Equal(t, "scan aborted", m.lastError)
	assert.Contains(t, m.View(), "scan aborted")

	m.Update(EventMsg{Event: domain.StrategyChangedEvent{}})
	assert.Empty(t, m.lastError)
}

func TestQuit(t *testing.T) {
	m := newTestModel(newFakeEngine())

	_, cmd := m.Update(runeKey('q'))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestTickStopsInPagerMode(t *testing.T) {
	m := newTestModel(newFakeEngine())

	_, cmd := m.Update(tickMsg(time.Now()))
	assert.NotNil(t, cmd)

	m.inPagerMode = true
	_, cmd = m.Update(tickMsg(time.Now()))
	assert.Nil(t, cmd)

	_, cmd = m.Update(helpPagerMsg{})
	assert.False(t, m.inPagerMode)
	assert.NotNil(t, cmd, "closing the pager restarts the tick")
}
