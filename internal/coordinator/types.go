// Package coordinator wires the scan components into one engine instance.
package coordinator

import (
	"switchscan/internal/clock"
	"switchscan/internal/domain"
	"switchscan/internal/eventbus"
	"switchscan/internal/loop"
	"switchscan/internal/menu"
	"switchscan/internal/scan/strategy"
	"switchscan/internal/selection"
)

// Deps are the collaborators supplied by the host
type Deps struct {
	Exec       loop.Executor
	Source     clock.Source
	Bus        eventbus.EventBus
	Renderer   strategy.Renderer
	Dispatcher menu.GestureDispatcher
	// Committer defaults to a tap through Dispatcher
	Committer selection.Committer
}

// MenuStatus describes the open menu
type MenuStatus struct {
	Title       string
	Entries     []string
	Highlighted int
	Depth       int
}

// Status is a snapshot of the engine, safe to read from any goroutine
type Status struct {
	Strategy      domain.StrategyKind
	State         domain.ScanState
	Screen        domain.Size
	Items         int
	Targets       int
	CommitPending bool
	Menu          *MenuStatus
}

type tapCommitter struct {
	dispatcher menu.GestureDispatcher
}

func (t tapCommitter) Commit(c domain.Candidate) {
	if t.dispatcher != nil {
		t.dispatcher.Dispatch(menu.GestureTap, c.Point)
	}
}
