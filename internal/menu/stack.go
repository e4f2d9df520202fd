package menu

import (
	"log/slog"

	"switchscan/internal/domain"
	"switchscan/internal/scan/grouping"
	"switchscan/internal/scan/items"
	"switchscan/internal/scan/strategy"
	"switchscan/internal/slogs"
)

type level struct {
	menu     *Menu
	strategy *items.Strategy
}

// Stack holds the open menus. Only the top level scans.
// Methods must be called from the engine's executor.
type Stack struct {
	deps       strategy.Deps
	opts       items.Options
	dispatcher GestureDispatcher
	host       Host
	levels     []level
}

// NewStack creates an empty stack. opts are used for every level; menus
// always stop scanning once an entry is picked.
func NewStack(deps strategy.Deps, opts items.Options, dispatcher GestureDispatcher, host Host) *Stack {
	deps = deps.WithDefaults()
	opts.StopOnSelect = true
	opts.GroupScan = false
	opts.Grouping = grouping.Options{ItemThreshold: entryHeight / 2, Density: 1, GroupSize: 1}
	return &Stack{deps: deps, opts: opts, dispatcher: dispatcher, host: host}
}

// Open reports whether any menu is shown
func (s *Stack) Open() bool { return len(s.levels) > 0 }

// Depth returns the number of open levels
func (s *Stack) Depth() int { return len(s.levels) }

// Current returns the top menu
func (s *Stack) Current() (*Menu, bool) {
	if len(s.levels) == 0 {
		return nil, false
	}
	return s.levels[len(s.levels)-1].menu, true
}

// Strategy returns the strategy scanning the top menu
func (s *Stack) Strategy() (strategy.Strategy, bool) {
	if len(s.levels) == 0 {
		return nil, false
	}
	return s.levels[len(s.levels)-1].strategy, true
}

// Choose opens the point-action menu for a candidate
func (s *Stack) Choose(c domain.Candidate) {
	s.Push(PointActions(c.Point))
}

// Push opens m on top of the stack and starts scanning it
func (s *Stack) Push(m *Menu) {
	if top, ok := s.Strategy(); ok {
		top.Stop()
	} else if s.host != nil {
		s.host.MenuOpened()
	}

	for _, e := range m.Entries {
		e.onSelect = s.picked
	}
	st := items.New(s.deps, s.opts)
	st.SetTargets(m.layout())
	s.levels = append(s.levels, level{menu: m, strategy: st})
	st.Start()

	slog.Debug("Menu opened", "title", m.Title, slogs.Count, len(s.levels))
	s.deps.Bus.Publish(domain.MenuChangedEvent{Title: m.Title, Depth: len(s.levels)})
}

// Pop closes the top menu and resumes the one below it
func (s *Stack) Pop() {
	if len(s.levels) == 0 {
		return
	}
	top := s.levels[len(s.levels)-1]
	top.strategy.Close()
	s.levels = s.levels[:len(s.levels)-1]

	if len(s.levels) == 0 {
		s.closed()
		return
	}
	next := s.levels[len(s.levels)-1]
	next.strategy.Start()
	s.deps.Bus.Publish(domain.MenuChangedEvent{Title: next.menu.Title, Depth: len(s.levels)})
}

// Close closes every level
func (s *Stack) Close() {
	if len(s.levels) == 0 {
		return
	}
	for i := len(s.levels) - 1; i >= 0; i-- {
		s.levels[i].strategy.Close()
	}
	s.levels = nil
	s.closed()
}

func (s *Stack) closed() {
	slog.Debug("Menu closed")
	s.deps.Bus.Publish(domain.MenuChangedEvent{Depth: 0})
	if s.host != nil {
		s.host.MenuClosed()
	}
}

// picked runs after the selecting strategy has finished its step
func (s *Stack) picked(e *Entry) {
	s.deps.Exec.Post(func() { s.activate(e) })
}

func (s *Stack) activate(e *Entry) {
	m, ok := s.Current()
	if !ok {
		return
	}
	switch e.Kind {
	case EntryGesture:
		point := m.Point
		slog.Info("Dispatching gesture", "gesture", e.Gesture, slogs.Point, point)
		if s.dispatcher != nil {
			s.dispatcher.Dispatch(e.Gesture, point)
		}
		s.deps.Bus.Publish(domain.GestureDispatchedEvent{Gesture: string(e.Gesture), Point: point})
		s.Close()
	case EntrySubmenu:
		if e.Submenu != nil {
			s.Push(e.Submenu)
		}
	case EntryBack:
		s.Pop()
	case EntryClose:
		s.Close()
	}
}
