package ui

import (
	"fmt"
	"log/slog"
	"sync"

	"switchscan/internal/domain"
	"switchscan/internal/eventbus"
	"switchscan/internal/menu"
	"switchscan/internal/slogs"
)

const gestureHistory = 5

// Gestures performs gestures on the virtual keyboard: a tap types the key
// under the point, anything else is only recorded
type Gestures struct {
	kb  *Keyboard
	bus eventbus.EventBus

	mu      sync.Mutex
	history []string
}

var _ menu.GestureDispatcher = (*Gestures)(nil)

// NewGestures creates a dispatcher over kb. bus may be nil.
func NewGestures(kb *Keyboard, bus eventbus.EventBus) *Gestures {
	if bus == nil {
		bus = eventbus.Null{}
	}
	return &Gestures{kb: kb, bus: bus}
}

func (g *Gestures) Dispatch(gesture menu.Gesture, p domain.Point) {
	entry := fmt.Sprintf("%s at %.0f,%.0f", gesture, p.X, p.Y)
	if gesture == menu.GestureTap {
		if key, ok := g.kb.KeyAt(p); ok {
			key.Select()
			entry += " → " + key.Label
		}
	}
	slog.Info("Gesture", "gesture", gesture, slogs.Point, p)
	g.bus.Publish(domain.GestureDispatchedEvent{Gesture: string(gesture), Point: p})

	g.mu.Lock()
	defer g.mu.Unlock()
	g.history = append(g.history, entry)
	if len(g.history) > gestureHistory {
		g.history = g.history[len(g.history)-gestureHistory:]
	}
}

// History returns the most recent gestures, oldest first
func (g *Gestures) History() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.history...)
}
