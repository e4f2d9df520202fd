package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"switchscan/internal/clock/clocktest"
	"switchscan/internal/config"
	"switchscan/internal/domain"
	"switchscan/internal/eventbus"
	"switchscan/internal/loop"
)

type fired struct {
	action Action
	at     time.Duration
}

type recordingSink struct {
	fake  *clocktest.Fake
	start time.Time
	fired []fired
}

func (s *recordingSink) HandleAction(action Action, _ SwitchEvent) {
	s.fired = append(s.fired, fired{action: action, at: s.fake.Now().Sub(s.start)})
}

func (s *recordingSink) actions() []Action {
	var out []Action
	for _, f := range s.fired {
		out = append(out, f.action)
	}
	return out
}

type fakeScanner struct {
	required bool
	pauses   int
	resumes  int
}

func (f *fakeScanner) PauseOnHoldRequired() bool { return f.required }
func (f *fakeScanner) Pause()                    { f.pauses++ }
func (f *fakeScanner) Resume()                   { f.resumes++ }

const (
	actionA Action = ActionToggleDirection
	actionB Action = ActionChangeMethod
)

func newCoordinator(opts Options) (*Coordinator, *clocktest.Fake, *recordingSink, *fakeScanner) {
	fake := clocktest.New()
	sink := &recordingSink{fake: fake, start: fake.Now()}
	scanner := &fakeScanner{}
	switches := []SwitchEvent{
		{Name: "Select", Code: "space", PressAction: ActionSelect, HoldActions: []Action{actionA, actionB}},
		{Name: "Next", Code: "enter", PressAction: ActionNext},
	}
	c := NewCoordinator(fake, &loop.Inline{}, eventbus.NewSync(), switches, opts, sink, scanner)
	return c, fake, sink, scanner
}

func defaultOptions() Options {
	return Options{HoldTime: 500 * time.Millisecond, IgnoreRepeatDelay: 300 * time.Millisecond}
}

func TestShortPressFiresPressAction(t *testing.T) {
	c, fake, sink, _ := newCoordinator(defaultOptions())

	assert.True(t, c.OnPress("space"))
	fake.Advance(100 * time.Millisecond)
	assert.True(t, c.OnRelease("space"))

	assert.Equal(t, []Action{ActionSelect}, sink.actions())
	assert.False(t, c.Pressed("space"))
}

func TestHoldSequenceFiresInOrderAndSuppressesPress(t *testing.T) {
	c, fake, sink, _ := newCoordinator(defaultOptions())

	c.OnPress("space")
	fake.Advance(1200 * time.Millisecond)
	c.OnRelease("space")

	require.Len(t, sink.fired, 2)
	assert.Equal(t, fired{action: actionA, at: 500 * time.Millisecond}, sink.fired[0])
	assert.Equal(t, fired{action: actionB, at: 1000 * time.Millisecond}, sink.fired[1])
	assert.Equal(t, 0, fake.Pending())
}

func TestReleaseCancelsRemainingHoldActions(t *testing.T) {
	c, fake, sink, _ := newCoordinator(defaultOptions())

	c.OnPress("space")
	fake.Advance(700 * time.Millisecond)
	c.OnRelease("space")
	fake.Advance(time.Second)

	assert.Equal(t, []Action{actionA}, sink.actions())
}

func TestLongPressWithoutHoldActionsFiresPressAction(t *testing.T) {
	c, fake, sink, _ := newCoordinator(defaultOptions())

	c.OnPress("enter")
	fake.Advance(2 * time.Second)
	c.OnRelease("enter")

	assert.Equal(t, []Action{ActionNext}, sink.actions())
}

func TestDebounceAbsorbsOnePress(t *testing.T) {
	opts := defaultOptions()
	opts.IgnoreRepeat = true
	c, fake, sink, _ := newCoordinator(opts)
	bus := eventbus.NewSync()
	c.bus = bus
	var presses int
	bus.Subscribe(domain.EventSwitchPressed, func(eventbus.DomainEvent) { presses++ })

	assert.True(t, c.OnPress("enter"))
	fake.Advance(50 * time.Millisecond)
	c.OnRelease("enter")
	fake.Advance(50 * time.Millisecond)
	assert.True(t, c.OnPress("enter"))
	c.OnRelease("enter")

	assert.Equal(t, 1, presses)
	assert.Equal(t, []Action{ActionNext}, sink.actions())

	fake.Advance(300 * time.Millisecond)
	c.OnPress("enter")
	c.OnRelease("enter")
	assert.Equal(t, 2, presses)
}

func TestRepeatsAllowedWhenIgnoreRepeatIsOff(t *testing.T) {
	c, fake, sink, _ := newCoordinator(defaultOptions())

	c.OnPress("enter")
	c.OnRelease("enter")
	fake.Advance(10 * time.Millisecond)
	c.OnPress("enter")
	c.OnRelease("enter")

	assert.Len(t, sink.fired, 2)
}

func TestUnknownCodeIsNotRecognized(t *testing.T) {
	c, _, sink, _ := newCoordinator(defaultOptions())

	assert.False(t, c.Recognizes("x"))
	assert.False(t, c.OnPress("x"))
	assert.False(t, c.OnRelease("x"))
	assert.Empty(t, sink.fired)
}

func TestUnmatchedReleaseIsInert(t *testing.T) {
	c, _, sink, _ := newCoordinator(defaultOptions())

	assert.True(t, c.OnRelease("space"))
	assert.Empty(t, sink.fired)
}

func TestAutoRepeatWhileHeldIsAbsorbed(t *testing.T) {
	c, fake, sink, _ := newCoordinator(defaultOptions())

	c.OnPress("enter")
	fake.Advance(100 * time.Millisecond)
	c.OnPress("enter")
	c.OnRelease("enter")

	assert.Equal(t, []Action{ActionNext}, sink.actions())
}

func TestPauseOnHoldWhenConfigured(t *testing.T) {
	opts := defaultOptions()
	opts.PauseOnHold = true
	c, _, _, scanner := newCoordinator(opts)

	c.OnPress("enter")
	assert.Equal(t, 1, scanner.pauses)
	assert.Equal(t, 0, scanner.resumes)

	c.OnRelease("enter")
	assert.Equal(t, 1, scanner.resumes)
}

func TestPauseOnHoldForcedByStrategy(t *testing.T) {
	c, _, _, scanner := newCoordinator(defaultOptions())

	c.OnPress("enter")
	c.OnRelease("enter")
	assert.Equal(t, 0, scanner.pauses)

	scanner.required = true
	c.OnPress("enter")
	c.OnRelease("enter")
	assert.Equal(t, 1, scanner.pauses)
	assert.Equal(t, 1, scanner.resumes)
}

func TestResetDropsPendingHold(t *testing.T) {
	c, fake, sink, _ := newCoordinator(defaultOptions())

	c.OnPress("space")
	c.Reset()
	fake.Advance(time.Second)

	assert.Empty(t, sink.fired)
	assert.False(t, c.Pressed("space"))
}

func TestSwitchesFromConfig(t *testing.T) {
	switches, err := SwitchesFromConfig(config.DefaultSwitches())
	require.NoError(t, err)
	require.Len(t, switches, 2)
	assert.Equal(t, ActionSelect, switches[0].PressAction)
	assert.Equal(t, []Action{ActionToggleDirection, ActionChangeMethod}, switches[0].HoldActions)

	_, err = SwitchesFromConfig([]config.SwitchConfig{{Name: "Bad", Code: "x", Press: "jump"}})
	assert.ErrorContains(t, err, "jump")
}
