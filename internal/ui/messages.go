package ui

import (
	"time"

	"switchscan/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// tickMsg re-renders on a timer so the status line follows the engine
type tickMsg time.Time

// RedrawMsg asks the model to render again after the overlay changed
type RedrawMsg struct{}

// releaseMsg ends a simulated switch press
type releaseMsg struct {
	code string
	gen  int
}

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}
